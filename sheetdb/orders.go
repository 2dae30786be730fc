package sheetdb

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"sweetshop/models"
)

var orderColumns = []string{
	"order_id", "user_email", "name", "amount", "status", "items",
	"address", "contact", "created_at", "razorpay_payment_id", "razorpay_order_id",
}

const orderIDAttempts = 5

// Overridden by tests.
var randomOrderID = func() string {
	return fmt.Sprintf("%08d", 10000000+rand.Intn(90000000))
}

func orderFromRow(r row) models.Order {
	status := r.values["status"]
	if status == "" {
		status = string(models.StatusPending)
	}
	return models.Order{
		OrderID:           r.values["order_id"],
		UserEmail:         r.values["user_email"],
		Name:              r.values["name"],
		Amount:            r.values["amount"],
		Status:            models.OrderStatus(status),
		Items:             r.values["items"],
		Address:           r.values["address"],
		Contact:           r.values["contact"],
		CreatedAt:         r.values["created_at"],
		RazorpayPaymentID: r.values["razorpay_payment_id"],
		RazorpayOrderID:   r.values["razorpay_order_id"],
	}
}

// CreateOrder persists a verified order and returns its 8-digit id. Ids are
// drawn at random and checked against existing rows; after orderIDAttempts
// colliding draws the call fails rather than overwrite.
func (s *sheetStore) CreateOrder(ctx context.Context, order models.Order) (string, error) {
	if err := s.api.ensureSheet(ctx, sheetOrders, orderColumns); err != nil {
		return "", err
	}
	if err := s.api.ensureHeaders(ctx, sheetOrders, orderColumns); err != nil {
		return "", err
	}

	rows, err := s.api.readSheet(ctx, sheetOrders)
	if err != nil {
		return "", err
	}
	taken := make(map[string]bool, len(rows))
	for _, r := range rows {
		taken[r.values["order_id"]] = true
	}

	orderID := ""
	for i := 0; i < orderIDAttempts; i++ {
		candidate := randomOrderID()
		if !taken[candidate] {
			orderID = candidate
			break
		}
	}
	if orderID == "" {
		return "", errors.New("could not allocate a unique order id")
	}

	err = s.api.appendRow(ctx, sheetOrders, map[string]string{
		"order_id":            orderID,
		"user_email":          order.UserEmail,
		"name":                order.Name,
		"amount":              order.Amount,
		"status":              string(order.Status),
		"items":               order.Items,
		"address":             order.Address,
		"contact":             order.Contact,
		"created_at":          now().UTC().Format(time.RFC3339),
		"razorpay_payment_id": order.RazorpayPaymentID,
		"razorpay_order_id":   order.RazorpayOrderID,
	})
	if err != nil {
		return "", err
	}
	return orderID, nil
}

func (s *sheetStore) findOrderRow(ctx context.Context, orderID string) (row, error) {
	rows, err := s.api.readSheet(ctx, sheetOrders)
	if err != nil {
		return row{}, err
	}
	for _, r := range rows {
		if r.values["order_id"] == orderID {
			return r, nil
		}
	}
	return row{}, ErrNotFound
}

func (s *sheetStore) GetOrder(ctx context.Context, orderID string) (models.Order, error) {
	r, err := s.findOrderRow(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}
	return orderFromRow(r), nil
}

// GetOrdersByEmail returns the customer's orders, newest first.
func (s *sheetStore) GetOrdersByEmail(ctx context.Context, email string) ([]models.Order, error) {
	rows, err := s.api.readSheet(ctx, sheetOrders)
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	for _, r := range rows {
		if r.values["user_email"] == email {
			orders = append(orders, orderFromRow(r))
		}
	}
	reverseOrders(orders)
	return orders, nil
}

// GetAllOrders returns every order, newest first.
func (s *sheetStore) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := s.api.readSheet(ctx, sheetOrders)
	if err != nil {
		return nil, err
	}
	orders := make([]models.Order, 0, len(rows))
	for _, r := range rows {
		orders = append(orders, orderFromRow(r))
	}
	reverseOrders(orders)
	return orders, nil
}

// UpdateOrderStatus overwrites the status field after checking the move is
// legal. Unknown order ids return ErrNotFound; out-of-order moves return
// ErrIllegalTransition.
func (s *sheetStore) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	r, err := s.findOrderRow(ctx, orderID)
	if err != nil {
		return err
	}

	current := orderFromRow(r).Status
	if !current.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, current, status)
	}

	r.values["status"] = string(status)
	return s.api.updateRow(ctx, sheetOrders, r)
}

func reverseOrders(orders []models.Order) {
	for i, j := 0, len(orders)-1; i < j; i, j = i+1, j-1 {
		orders[i], orders[j] = orders[j], orders[i]
	}
}
