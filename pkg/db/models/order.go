package models

import (
	"time"

	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
)

// AnonymousCustomerID marks orders placed without an account.
const AnonymousCustomerID = "anonymous"

// Order is the immutable-total record produced by checkout.
type Order struct {
	ID                 string              `gorm:"column:id;type:text;primaryKey" json:"id"`
	CustomerID         string              `gorm:"column:customer_id;type:text;not null;index" json:"customerId"`
	CustomerName       string              `gorm:"column:customer_name;type:text;not null" json:"customerName"`
	CustomerEmail      *string             `gorm:"column:customer_email;type:text" json:"customerEmail,omitempty"`
	Items              []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount        int64               `gorm:"column:total_amount;not null" json:"totalAmount"`
	Status             enums.OrderStatus   `gorm:"column:status;type:text;not null;index" json:"status"`
	PaymentMethod      enums.PaymentMethod `gorm:"column:payment_method;type:text;not null" json:"paymentMethod"`
	PaymentStatus      enums.PaymentStatus `gorm:"column:payment_status;type:text;not null" json:"paymentStatus"`
	PaymentReference   *string             `gorm:"column:payment_reference;type:text" json:"paymentReference,omitempty"`
	EstimatedReadyTime time.Time           `gorm:"column:estimated_ready_time;not null" json:"estimatedReadyTime"`
	CompletedAt        *time.Time          `gorm:"column:completed_at" json:"completedAt,omitempty"`
	CreatedAt          time.Time           `gorm:"column:created_at;not null" json:"createdAt"`
	UpdatedAt          time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

// IsAnonymous reports whether the order was placed without an account.
func (o Order) IsAnonymous() bool {
	return o.CustomerID == AnonymousCustomerID
}

// OrderItem snapshots a cart line at checkout time.
type OrderItem struct {
	ID                  uint    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	OrderID             string  `gorm:"column:order_id;type:text;not null;index" json:"-"`
	Position            int     `gorm:"column:position;not null;default:0" json:"-"`
	ItemID              string  `gorm:"column:item_id;type:text;not null" json:"itemId"`
	Name                string  `gorm:"column:name;type:text;not null" json:"name"`
	Price               int64   `gorm:"column:price;not null" json:"price"`
	Quantity            int     `gorm:"column:quantity;not null" json:"quantity"`
	Total               int64   `gorm:"column:total;not null" json:"total"`
	SpecialInstructions *string `gorm:"column:special_instructions;type:text" json:"specialInstructions,omitempty"`
}
