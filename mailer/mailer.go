// Package mailer sends the shop's templated email: signup/reset OTP messages
// and the line-itemized order invoice.
package mailer

import (
	"errors"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"sweetshop/config"
	"sweetshop/models"
)

var ErrNotConfigured = errors.New("email credentials missing")

type Mailer struct {
	cfg config.EmailConfig

	// Swapped by tests to capture messages instead of dialing SMTP.
	send func(*gomail.Message) error
}

func New(cfg config.EmailConfig) *Mailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	return &Mailer{cfg: cfg, send: func(m *gomail.Message) error {
		return dialer.DialAndSend(m)
	}}
}

func (m *Mailer) sendHTML(to, subject, body string) error {
	if m.cfg.User == "" || m.cfg.Password == "" {
		return ErrNotConfigured
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.User)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	return m.send(msg)
}

// SendVerificationEmail mails the signup OTP.
func (m *Mailer) SendVerificationEmail(to, otp string) error {
	body, err := renderOTP(otpEmailData{
		Heading: "Welcome to SweetShop!",
		Intro:   "Please use the following OTP to verify your email address and complete your signup:",
		OTP:     otp,
		Footer:  "",
	})
	if err != nil {
		return err
	}
	return m.sendHTML(to, "Verify your email - SweetShop", body)
}

// SendPasswordResetEmail mails the password reset OTP.
func (m *Mailer) SendPasswordResetEmail(to, otp string) error {
	body, err := renderOTP(otpEmailData{
		Heading: "Password Reset Request",
		Intro:   "Your OTP for password reset is:",
		OTP:     otp,
		Footer:  "If you didn't request this, please ignore this email.",
	})
	if err != nil {
		return err
	}
	return m.sendHTML(to, "SweetShop Password Reset OTP", body)
}

// SendInvoiceEmail mails the order invoice to the customer. Callers treat
// failure as best-effort: it is logged, never surfaced to the buyer.
func (m *Mailer) SendInvoiceEmail(order models.Order, shop models.ShopSettings) error {
	shopName := shop.Name
	if shopName == "" {
		shopName = "SweetShop"
	}

	body, err := RenderInvoice(order, shop)
	if err != nil {
		return fmt.Errorf("render invoice: %w", err)
	}
	subject := fmt.Sprintf("Invoice for Order #%s - %s", order.OrderID, shopName)
	return m.sendHTML(order.UserEmail, subject, body)
}
