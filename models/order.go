package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type OrderStatus string

// Stored status vocabulary, kept byte-for-byte compatible with existing rows
// (including the lower-case "paid").
const (
	StatusPending   OrderStatus = "Pending"
	StatusPaid      OrderStatus = "paid"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"
	StatusRefunded  OrderStatus = "Refunded"
)

var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusPaid},
	StatusPaid:      {StatusDelivered, StatusCancelled, StatusRefunded},
	StatusDelivered: {},
	StatusCancelled: {},
	StatusRefunded:  {},
}

// ParseOrderStatus validates a status string against the closed set.
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := statusTransitions[status]; !ok {
		return "", fmt.Errorf("unknown order status %q", s)
	}
	return status, nil
}

// CanTransitionTo reports whether moving from s to next is a legal step in
// Pending -> paid -> {Delivered, Cancelled, Refunded}.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	OrderID           string      `json:"id"`
	UserEmail         string      `json:"email"`
	Name              string      `json:"customer"`
	Amount            string      `json:"amount"`
	Status            OrderStatus `json:"status"`
	Items             string      `json:"items"`
	Address           string      `json:"address"`
	Contact           string      `json:"contact"`
	CreatedAt         string      `json:"date"`
	RazorpayPaymentID string      `json:"-"`
	RazorpayOrderID   string      `json:"-"`
}

type OrderItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// ParseOrderItems decodes the serialized items column. A blank or malformed
// column yields an empty slice rather than an error, matching how stored
// orders are displayed.
func ParseOrderItems(raw string) []OrderItem {
	var items []OrderItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	return items
}

// ItemsTotal sums price*quantity over all line items.
func ItemsTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		price := decimal.NewFromFloat(item.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
