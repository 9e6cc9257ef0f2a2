package orders

import (
	"fmt"
	"time"
)

// Type represents how the customer receives the order.
type Type string

const (
	TypeDineIn   Type = "dine_in"
	TypePickup   Type = "pickup"
	TypeDelivery Type = "delivery"
)

// Valid reports whether t is a known order type.
func (t Type) Valid() bool {
	switch t {
	case TypeDineIn, TypePickup, TypeDelivery:
		return true
	}
	return false
}

// Money is an amount in cents.
type Money int64

// String renders the amount as a decimal string, e.g. "12.50".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// OrderItem is one line of an order, priced per unit at order time.
type OrderItem struct {
	ItemID   string `json:"itemId"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    Money  `json:"price"`
}

// Order is the order document as persisted.
type Order struct {
	ID            string      `json:"id"`
	DailyOrderID  int64       `json:"dailyOrderId"`
	CustomerName  string      `json:"customerName"`
	ContactNumber string      `json:"contactNumber"`
	Type          Type        `json:"orderType"`
	TableNumber   int         `json:"tableNumber,omitempty"`
	Address       string      `json:"address,omitempty"`
	Items         []OrderItem `json:"items"`
	ChargeIDs     []string    `json:"chargeIds,omitempty"`
	DiscountID    string      `json:"discountId,omitempty"`
	Subtotal      Money       `json:"subtotal"`
	Total         Money       `json:"total"`
	Status        Status      `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// ItemSubtotal recomputes the item subtotal from the order lines.
func (o *Order) ItemSubtotal() Money {
	var sum Money
	for _, it := range o.Items {
		sum += Money(it.Quantity) * it.Price
	}
	return sum
}
