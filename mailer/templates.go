package mailer

import (
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"sweetshop/models"
)

type otpEmailData struct {
	Heading string
	Intro   string
	OTP     string
	Footer  string
}

var otpTemplate = template.Must(template.New("otp").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #4f46e5;">{{.Heading}}</h2>
    <p>{{.Intro}}</p>
    <div style="background-color: #f3f4f6; padding: 15px; text-align: center; border-radius: 8px; font-size: 24px; font-weight: bold; letter-spacing: 5px; color: #333;">
        {{.OTP}}
    </div>
    <p style="color: #666; font-size: 14px; margin-top: 20px;">This OTP is valid for 15 minutes.</p>
    {{if .Footer}}<p style="color: #666; font-size: 14px;">{{.Footer}}</p>{{end}}
</div>
`))

func renderOTP(data otpEmailData) (string, error) {
	var buf strings.Builder
	if err := otpTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type invoiceLine struct {
	Name     string
	Quantity int
	Price    string
	Total    string
}

type invoiceData struct {
	ShopName    string
	ShopAddress string
	ShopContact string
	ShopGSTIN   string
	OrderID     string
	Date        string
	Customer    string
	Amount      string
	Lines       []invoiceLine
}

var invoiceTemplate = template.Must(template.New("invoice").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; color: #333;">
    <h1 style="color: #4f46e5; text-align: center;">{{.ShopName}}</h1>
    <div style="text-align: center; margin-bottom: 20px; font-size: 14px; color: #666;">
        <p>{{.ShopAddress}}</p>
        <p>Contact: {{.ShopContact}}</p>
        {{if .ShopGSTIN}}<p>GSTIN: {{.ShopGSTIN}}</p>{{end}}
    </div>

    <div style="background: #f9fafb; padding: 20px; border-radius: 8px;">
        <h2 style="margin-top: 0;">Invoice #{{.OrderID}}</h2>
        <p><strong>Date:</strong> {{.Date}}</p>
        <p><strong>Customer:</strong> {{.Customer}}</p>

        <table style="width: 100%; border-collapse: collapse; margin-top: 20px;">
            <thead>
                <tr style="background: #4f46e5; color: white;">
                    <th style="padding: 10px; text-align: left;">Item</th>
                    <th style="padding: 10px; text-align: center;">Qty</th>
                    <th style="padding: 10px; text-align: right;">Price</th>
                    <th style="padding: 10px; text-align: right;">Total</th>
                </tr>
            </thead>
            <tbody>
                {{range .Lines}}
                <tr>
                    <td style="padding: 8px; border-bottom: 1px solid #ddd;">{{.Name}}</td>
                    <td style="padding: 8px; border-bottom: 1px solid #ddd; text-align: center;">{{.Quantity}}</td>
                    <td style="padding: 8px; border-bottom: 1px solid #ddd; text-align: right;">&#8377;{{.Price}}</td>
                    <td style="padding: 8px; border-bottom: 1px solid #ddd; text-align: right;">&#8377;{{.Total}}</td>
                </tr>
                {{end}}
            </tbody>
            <tfoot>
                <tr>
                    <td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
                    <td style="padding: 10px; text-align: right; font-weight: bold;">&#8377;{{.Amount}}</td>
                </tr>
            </tfoot>
        </table>
    </div>
    <p style="text-align: center; margin-top: 30px; font-size: 14px; color: #888;">Thank you for your order!</p>
</div>
`))

// RenderInvoice builds the invoice HTML for an order: one row per line item
// with quantity, unit price and line total, plus the shop identity block and
// the grand total.
func RenderInvoice(order models.Order, shop models.ShopSettings) (string, error) {
	items := models.ParseOrderItems(order.Items)

	lines := make([]invoiceLine, 0, len(items))
	for _, item := range items {
		price := decimal.NewFromFloat(item.Price)
		total := price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		lines = append(lines, invoiceLine{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    price.StringFixed(2),
			Total:    total.StringFixed(2),
		})
	}

	shopName := shop.Name
	if shopName == "" {
		shopName = "SweetShop"
	}
	customer := order.Name
	if customer == "" {
		customer = "Customer"
	}

	data := invoiceData{
		ShopName:    shopName,
		ShopAddress: shop.Address,
		ShopContact: shop.Contact,
		ShopGSTIN:   shop.GSTIN,
		OrderID:     order.OrderID,
		Date:        time.Now().Format("02/01/2006"),
		Customer:    customer,
		Amount:      order.Amount,
		Lines:       lines,
	}

	var buf strings.Builder
	if err := invoiceTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
