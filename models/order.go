package models

import "time"

// OrderType matches the order_type column of the orders table.
type OrderType string

const (
	OrderDineIn   OrderType = "dine_in"
	OrderTakeaway OrderType = "takeaway"
	OrderDelivery OrderType = "delivery"
)

// OrderStatus represents the lifecycle of a persisted order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentCash          PaymentMethod = "cash"
	PaymentCard          PaymentMethod = "card"
	PaymentDigitalWallet PaymentMethod = "digital_wallet"
)

// Vietnamese display labels used by the storefront.
var (
	OrderTypeLabels = map[OrderType]string{
		OrderDineIn:   "Tại quán",
		OrderTakeaway: "Mang đi",
		OrderDelivery: "Giao hàng",
	}
	OrderStatusLabels = map[OrderStatus]string{
		StatusPending:   "Chờ xử lý",
		StatusPreparing: "Đang chuẩn bị",
		StatusReady:     "Sẵn sàng",
		StatusCompleted: "Hoàn thành",
		StatusCancelled: "Đã hủy",
	}
)

type Order struct {
	ID             uint          `json:"id" gorm:"primaryKey"`
	OrderNumber    string        `json:"order_number" gorm:"uniqueIndex;not null"`
	OrderType      OrderType     `json:"order_type" gorm:"not null"`
	Status         OrderStatus   `json:"status" gorm:"not null;default:'pending'"`
	Subtotal       float64       `json:"subtotal"`
	DiscountAmount float64       `json:"discount_amount"`
	TotalAmount    float64       `json:"total_amount"`
	PaymentStatus  PaymentStatus `json:"payment_status" gorm:"not null;default:'pending'"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
	Notes          string        `json:"notes"`
	Items          []OrderItem   `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

type OrderItem struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	OrderID    uint     `json:"order_id" gorm:"not null"`
	MenuItemID uint     `json:"menu_item_id" gorm:"not null"`
	MenuItem   MenuItem `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int      `json:"quantity" gorm:"not null"`
	UnitPrice  float64  `json:"unit_price" gorm:"not null"` // snapshot price at time of order
	TotalPrice float64  `json:"total_price" gorm:"not null"`
	// SpecialInstructions carries free-text notes for the kitchen.
	SpecialInstructions string `json:"special_instructions"`
}
