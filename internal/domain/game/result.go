package game

import (
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/inventory"
)

// DayCosts itemises what a processed day charged against profit
type DayCosts struct {
	Purchases  float64 `json:"purchases"`
	Transport  float64 `json:"transport"`
	Production float64 `json:"production"`
	Holding    float64 `json:"holding"`
	Overstock  float64 `json:"overstock"`
	Total      float64 `json:"total"`
}

// Sale records a customer order placed today
type Sale struct {
	OrderID       string  `json:"orderId"`
	CustomerID    string  `json:"customerId"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unitPrice"`
	TransportCost float64 `json:"transportCost"`
	NetRevenue    float64 `json:"netRevenue"`
	DeliveryDay   int     `json:"deliveryDay"`
}

// Purchase records a supplier order placed today
type Purchase struct {
	OrderID       string             `json:"orderId"`
	SupplierID    string             `json:"supplierId"`
	Material      inventory.Material `json:"material"`
	Quantity      int                `json:"quantity"`
	UnitPrice     float64            `json:"unitPrice"`
	PurchaseCost  float64            `json:"purchaseCost"`
	TransportCost float64            `json:"transportCost"`
	ArrivalDay    int                `json:"arrivalDay"`
}

// DailyResult is the immutable record of one processed day
type DailyResult struct {
	Day                 int                  `json:"day"`
	Inventory           inventory.Quantities `json:"inventory"`
	InventoryValue      inventory.Amounts    `json:"inventoryValue"`
	HoldingCosts        inventory.Amounts    `json:"holdingCosts"`
	OverstockCosts      inventory.Amounts    `json:"overstockCosts"`
	MaterialsPurchased  inventory.Quantities `json:"materialsPurchased"`
	MaterialsReceived   inventory.Quantities `json:"materialsReceived"`
	Purchases           []Purchase           `json:"purchases"`
	Production          int                  `json:"production"`
	Sales               []Sale               `json:"sales"`
	UnitsSold           int                  `json:"unitsSold"`
	UnitsDelivered      int                  `json:"unitsDelivered"`
	DeliveredOrders     []string             `json:"deliveredOrders"`
	Revenue             float64              `json:"revenue"`
	Costs               DayCosts             `json:"costs"`
	Profit              float64              `json:"profit"`
	CumulativeProfit    float64              `json:"cumulativeProfit"`
	Cash                float64              `json:"cash"`
	Score               int                  `json:"score"`
	UncoveredCost       float64              `json:"uncoveredCost,omitempty"`
	SafetyStockWarnings []inventory.Material `json:"safetyStockWarnings,omitempty"`
	ScheduleShortfalls  map[string]int       `json:"scheduleShortfalls,omitempty"`
}
