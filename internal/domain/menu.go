package domain

// MenuItem is one tile in the edit modal's add-item grid.
type MenuItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Menu is the shop's fixed drink and snack list.
var Menu = []MenuItem{
	{Name: "Trà Chanh", Price: 10000},
	{Name: "Trà Quất", Price: 10000},
	{Name: "Sữa Chua Lắc", Price: 25000},
	{Name: "Cafe Nâu", Price: 20000},
	{Name: "Cafe Đen", Price: 20000},
	{Name: "Bim Bim", Price: 6000},
	{Name: "Nước Ngọt", Price: 10000},
	{Name: "Bò Húc", Price: 15000},
	{Name: "Hướng Dương", Price: 10000},
}
