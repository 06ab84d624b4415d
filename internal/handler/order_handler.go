package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trachanh-shop/order-dashboard/internal/domain"
	"github.com/trachanh-shop/order-dashboard/internal/notify"
	"github.com/trachanh-shop/order-dashboard/internal/repository"
	"github.com/trachanh-shop/order-dashboard/internal/service"
)

type OrderHandler struct {
	orders *service.OrderService
	hub    *notify.Hub
	logger *zap.Logger
}

func NewOrderHandler(orders *service.OrderService, hub *notify.Hub, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		hub:    hub,
		logger: logger,
	}
}

func (h *OrderHandler) Register(r gin.IRouter) {
	r.GET("/dashboard", h.GetDashboard)
	r.GET("/menu", h.GetMenu)
	r.GET("/orders/:id", h.GetOrder)
	r.PATCH("/orders/:id/status", h.ChangeStatus)
	r.PUT("/orders/:id/items", h.SaveItems)
	r.DELETE("/orders/:id", h.DeleteOrder)
	r.GET("/reports/daily", h.DailyReport)
	r.GET("/alerts/stream", h.StreamAlerts)
}

type tabPayload struct {
	Status domain.Status     `json:"status"`
	Info   domain.StatusInfo `json:"info"`
	Orders []orderPayload    `json:"orders"`
}

type orderPayload struct {
	domain.Order
	DisplayID       string          `json:"displayId"`
	StatusLabel     string          `json:"statusLabel"`
	ServiceLabel    string          `json:"serviceLabel"`
	TotalFormatted  string          `json:"totalFormatted"`
	NextStatuses    []domain.Status `json:"nextStatuses"`
	Deletable       bool            `json:"deletable"`
	Editable        bool            `json:"editable"`
}

func toOrderPayload(o domain.Order) orderPayload {
	return orderPayload{
		Order:          o,
		DisplayID:      o.DisplayID(),
		StatusLabel:    o.Status.Info().Label,
		ServiceLabel:   o.ServiceType.Label(),
		TotalFormatted: domain.FormatVND(o.TotalAmount),
		NextStatuses:   o.Status.NextStatuses(),
		Deletable:      o.Status.Deletable(),
		Editable:       o.Status.Editable(),
	}
}

// GetDashboard returns the summary numbers and the five status tabs in
// one payload; the frontend renders it as-is.
func (h *OrderHandler) GetDashboard(c *gin.Context) {
	dash, err := h.orders.LoadDashboard(c.Request.Context())
	if err != nil {
		h.logger.Error("dashboard load failed",
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Có lỗi khi tải dữ liệu. Vui lòng tải lại trang!"})
		return
	}

	tabs := make([]tabPayload, 0, len(domain.AllStatuses))
	for _, s := range domain.AllStatuses {
		bucket := dash.Tabs[s]
		payloads := make([]orderPayload, 0, len(bucket))
		for _, o := range bucket {
			payloads = append(payloads, toOrderPayload(o))
		}
		tabs = append(tabs, tabPayload{Status: s, Info: s.Info(), Orders: payloads})
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"todayOrders":   dash.Stats.TodayOrders,
			"todayRevenue":  dash.Stats.TodayRevenue,
			"pendingOrders": dash.Stats.PendingOrders,
			"totalRevenue":  dash.Stats.TotalRevenue,
			"formatted": gin.H{
				"todayRevenue": domain.FormatVND(dash.Stats.TodayRevenue),
				"totalRevenue": domain.FormatVND(dash.Stats.TotalRevenue),
			},
		},
		"tabs": tabs,
	})
}

func (h *OrderHandler) GetMenu(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": domain.Menu})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderPayload(order))
}

type changeStatusRequest struct {
	Status domain.Status `json:"status" binding:"required"`
}

func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	err := h.orders.ChangeStatus(c.Request.Context(), c.Param("id"), req.Status, c.GetString("request_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Đã cập nhật trạng thái đơn hàng thành công!"})
}

type saveItemsRequest struct {
	Items []domain.OrderItem `json:"items" binding:"required"`
}

// SaveItems commits an edit. The request carries the working copy's
// items; the total is always recomputed server-side through an edit
// session so the stored amount matches the items.
func (h *OrderHandler) SaveItems(c *gin.Context) {
	var req saveItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}
	for _, it := range req.Items {
		if it.Quantity < 1 || it.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item quantity or price"})
			return
		}
	}

	session, _, err := h.orders.BeginEdit(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	session.Replace(req.Items)

	if err := h.orders.SaveEdit(c.Request.Context(), session, c.GetString("request_id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Đã cập nhật đơn hàng thành công!",
		"totalAmount": session.Total(),
	})
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	err := h.orders.Delete(c.Request.Context(), c.Param("id"), c.GetString("request_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Đã xóa đơn hàng thành công!"})
}

func (h *OrderHandler) DailyReport(c *gin.Context) {
	raw := c.Query("date")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vui lòng chọn ngày!"})
		return
	}
	day, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	report, err := h.orders.DayReport(c.Request.Context(), day)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":             report.Date,
		"totalOrders":      report.TotalOrders,
		"revenue":          report.Revenue,
		"revenueFormatted": domain.FormatVND(report.Revenue),
	})
}

// StreamAlerts is the server-sent-events feed behind the dashboard's
// toast surface. The subscription lives as long as the connection.
func (h *OrderHandler) StreamAlerts(c *gin.Context) {
	alerts, cancel := h.hub.Subscribe()
	defer cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case alert, ok := <-alerts:
			if !ok {
				return false
			}
			c.SSEvent("alert", alert)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func (h *OrderHandler) respondError(c *gin.Context, err error) {
	requestID := c.GetString("request_id")

	var illegal domain.ErrIllegalTransition
	switch {
	case errors.Is(err, repository.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy đơn hàng!"})
	case errors.As(err, &illegal):
		c.JSON(http.StatusConflict, gin.H{"error": illegal.Error()})
	case errors.Is(err, service.ErrNotDeletable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("store operation failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Có lỗi khi thao tác với đơn hàng!", "request_id": requestID})
	}
}
