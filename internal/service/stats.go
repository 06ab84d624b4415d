package service

import (
	"time"

	"github.com/trachanh-shop/order-dashboard/internal/domain"
)

// DashboardStats is the four-number summary shown above the tabs.
type DashboardStats struct {
	TodayOrders   int     `json:"todayOrders"`
	TodayRevenue  float64 `json:"todayRevenue"`
	PendingOrders int     `json:"pendingOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

// DayReport is the date-filtered variant of the daily summary.
type DayReport struct {
	Date        string  `json:"date"`
	TotalOrders int     `json:"totalOrders"`
	Revenue     float64 `json:"revenue"`
}

// countsAsRevenue reports whether the order's total belongs in a
// revenue sum. Only settled orders count.
func countsAsRevenue(o domain.Order) bool {
	return o.Status == domain.StatusPaid || o.Status == domain.StatusArchived
}

func isPending(o domain.Order) bool {
	return o.Status == domain.StatusNew || o.Status == domain.StatusProcessing
}

// ComputeStats folds the two snapshots into dashboard numbers. A
// zero TotalAmount (including one missing from the stored document)
// simply contributes nothing.
func ComputeStats(todayOrders, allOrders []domain.Order) DashboardStats {
	stats := DashboardStats{TodayOrders: len(todayOrders)}
	for _, o := range todayOrders {
		if countsAsRevenue(o) {
			stats.TodayRevenue += o.TotalAmount
		}
	}
	for _, o := range allOrders {
		if countsAsRevenue(o) {
			stats.TotalRevenue += o.TotalAmount
		}
		if isPending(o) {
			stats.PendingOrders++
		}
	}
	return stats
}

// ComputeDayReport summarizes one caller-selected day using the same
// inclusion rule as the dashboard's today numbers.
func ComputeDayReport(orders []domain.Order, day time.Time) DayReport {
	report := DayReport{
		Date:        day.Format("2006-01-02"),
		TotalOrders: len(orders),
	}
	for _, o := range orders {
		if countsAsRevenue(o) {
			report.Revenue += o.TotalAmount
		}
	}
	return report
}
