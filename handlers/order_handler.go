package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"sweetshop/mailer"
	"sweetshop/models"
	"sweetshop/sheetdb"
)

func parseAmount(raw string) float64 {
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return val
}

// customerName picks the display name for an order: the snapshot on the
// order, then the Users sheet, then the email prefix.
func customerName(order models.Order, userNames map[string]string) string {
	if order.Name != "" && order.Name != "undefined" {
		return order.Name
	}
	if name, ok := userNames[strings.ToLower(order.UserEmail)]; ok && name != "" {
		return name
	}
	if order.UserEmail != "" {
		return strings.SplitN(order.UserEmail, "@", 2)[0]
	}
	return "Guest"
}

func orderJSON(order models.Order, userNames map[string]string) gin.H {
	return gin.H{
		"id":       order.OrderID,
		"customer": customerName(order, userNames),
		"email":    order.UserEmail,
		"address":  order.Address,
		"amount":   parseAmount(order.Amount),
		"date":     order.CreatedAt,
		"status":   order.Status,
		"contact":  order.Contact,
		"items":    order.Items,
	}
}

// GetOrderListHandler returns the signed-in customer's own orders, newest
// first.
func GetOrderListHandler(c *gin.Context, store sheetdb.Store) {
	email, ok := c.Get("Email")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Unauthorized",
		})
		return
	}

	orders, err := store.GetOrdersByEmail(c, email.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch orders",
		})
		return
	}

	orderList := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		orderList = append(orderList, orderJSON(order, nil))
	}
	c.JSON(http.StatusOK, orderList)
}

// GetAllOrdersHandler returns every order for the admin back office, joining
// customer names from the Users sheet.
func GetAllOrdersHandler(c *gin.Context, store sheetdb.Store) {
	orders, err := store.GetAllOrders(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch orders",
		})
		return
	}

	userNames := map[string]string{}
	if users, err := store.ListUsers(c); err == nil {
		for _, user := range users {
			if user.Email != "" && user.Name != "" {
				userNames[strings.ToLower(user.Email)] = user.Name
			}
		}
	}

	orderList := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		orderList = append(orderList, orderJSON(order, userNames))
	}
	c.JSON(http.StatusOK, orderList)
}

// UpdateOrderStatusHandler moves an order along
// Pending -> paid -> {Delivered, Cancelled, Refunded}. Anything else is
// rejected at this boundary.
func UpdateOrderStatusHandler(c *gin.Context, store sheetdb.Store) {
	var req struct {
		OrderID string `json:"orderId" binding:"required"`
		Status  string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing orderId or status",
		})
		return
	}

	status, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	err = store.UpdateOrderStatus(c, req.OrderID, status)
	switch {
	case errors.Is(err, sheetdb.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	case errors.Is(err, sheetdb.ErrIllegalTransition):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update order",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// ResendInvoiceHandler re-sends the invoice email for an existing order.
// Unlike the checkout-time dispatch this one reports send failures, since the
// admin explicitly asked for it.
func ResendInvoiceHandler(c *gin.Context, store sheetdb.Store, mail *mailer.Mailer) {
	var req struct {
		OrderID string `json:"orderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing orderId",
		})
		return
	}

	order, err := store.GetOrder(c, req.OrderID)
	if errors.Is(err, sheetdb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch order",
		})
		return
	}

	shop, err := store.GetShopSettings(c)
	if err != nil {
		shop = models.ShopSettings{}
	}

	if err := mail.SendInvoiceEmail(order, shop); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to send email: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
