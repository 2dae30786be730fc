package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"sweetshop/gateway"
	"sweetshop/mailer"
	"sweetshop/models"
	"sweetshop/sheetdb"
)

// CreatePaymentHandler asks the gateway for a payment intent over the cart
// total.
func CreatePaymentHandler(c *gin.Context, gw *gateway.Client) {
	if gw == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Razorpay credentials missing from environment",
		})
		return
	}

	var req struct {
		Amount float64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Amount is required",
		})
		return
	}

	order, err := gw.CreateOrder(req.Amount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, order)
}

// VerifyPaymentHandler authenticates the gateway callback and, on success,
// persists the order and fires the invoice email. The email is best-effort:
// a send failure is logged and the customer still gets their order id.
func VerifyPaymentHandler(c *gin.Context, store sheetdb.Store, gw *gateway.Client, mail *mailer.Mailer) {
	if gw == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Razorpay credentials missing from environment",
		})
		return
	}

	var req struct {
		RazorpayOrderID   string          `json:"razorpay_order_id" binding:"required"`
		RazorpayPaymentID string          `json:"razorpay_payment_id" binding:"required"`
		RazorpaySignature string          `json:"razorpay_signature" binding:"required"`
		Email             string          `json:"email" binding:"required"`
		Name              string          `json:"name"`
		Items             json.RawMessage `json:"items"`
		Amount            float64         `json:"amount"`
		Address           string          `json:"address"`
		Contact           string          `json:"contact"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing fields",
		})
		return
	}

	err := gw.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)
	if errors.Is(err, gateway.ErrInvalidSignature) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid signature",
		})
		return
	}

	order := models.Order{
		UserEmail:         req.Email,
		Name:              req.Name,
		Amount:            strconv.FormatFloat(req.Amount, 'f', -1, 64),
		Status:            models.StatusPaid,
		Items:             string(req.Items),
		Address:           req.Address,
		Contact:           req.Contact,
		RazorpayPaymentID: req.RazorpayPaymentID,
		RazorpayOrderID:   req.RazorpayOrderID,
	}
	orderID, err := store.CreateOrder(c, order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal Server Error: " + err.Error(),
		})
		return
	}
	order.OrderID = orderID

	go sendInvoice(store, mail, order)

	c.JSON(http.StatusOK, gin.H{
		"message":  "Payment verified",
		"order_id": orderID,
	})
}

// sendInvoice runs detached from the checkout request with its own timeout.
func sendInvoice(store sheetdb.Store, mail *mailer.Mailer, order models.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	shop, err := store.GetShopSettings(ctx)
	if err != nil {
		log.Printf("invoice email for order %s: could not load shop settings: %v", order.OrderID, err)
		shop = models.ShopSettings{}
	}
	if err := mail.SendInvoiceEmail(order, shop); err != nil {
		log.Printf("invoice email for order %s failed: %v", order.OrderID, err)
	}
}
