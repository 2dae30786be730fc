// Package sheetdb persists the shop's entities as rows of a Google
// Spreadsheet. Each entity lives on its own sheet, keyed by a natural or
// surrogate id; there are no transactions beyond what the Sheets API gives a
// single call.
package sheetdb

import (
	"context"
	"errors"
	"time"

	"sweetshop/config"
	"sweetshop/models"
)

const (
	sheetUsers         = "Users"
	sheetProducts      = "Products"
	sheetOrders        = "Orders"
	sheetSettings      = "Settings"
	sheetVerifications = "Verifications"
	sheetPriceLogs     = "PriceLogs"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidOTP         = errors.New("invalid OTP")
	ErrOTPExpired         = errors.New("OTP expired")
	ErrIllegalTransition  = errors.New("illegal status transition")
)

// Overridden by tests.
var now = time.Now

// row is one spreadsheet row: its 1-based sheet position (the header is row 1,
// so data starts at 2) and its cells keyed by header name.
type row struct {
	index  int
	values map[string]string
}

// rowAPI is the seam between entity logic and the remote spreadsheet. The
// real implementation retries transient failures; tests swap in a fake.
type rowAPI interface {
	ensureSheet(ctx context.Context, title string, headers []string) error
	ensureHeaders(ctx context.Context, title string, required []string) error
	readSheet(ctx context.Context, title string) ([]row, error)
	appendRow(ctx context.Context, title string, values map[string]string) error
	updateRow(ctx context.Context, title string, r row) error
	deleteRow(ctx context.Context, title string, index int) error
}

// Store exposes typed read/write operations over the spreadsheet.
type Store interface {
	VerifyUser(ctx context.Context, email, password string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	CreateUser(ctx context.Context, user models.User) error
	ListUsers(ctx context.Context) ([]models.User, error)
	SaveOTP(ctx context.Context, email, otp string) error
	VerifyOTPAndResetPassword(ctx context.Context, email, otp, newPasswordHash string) error

	GetProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (models.Product, error)
	CreateProduct(ctx context.Context, product models.Product) error
	UpdateProduct(ctx context.Context, product models.Product, updatedBy string) error
	DeleteProduct(ctx context.Context, id string) error

	CreateOrder(ctx context.Context, order models.Order) (string, error)
	GetOrder(ctx context.Context, orderID string) (models.Order, error)
	GetOrdersByEmail(ctx context.Context, email string) ([]models.Order, error)
	GetAllOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) error

	GetShopSettings(ctx context.Context) (models.ShopSettings, error)
	SaveShopSettings(ctx context.Context, settings models.ShopSettings) error

	SaveVerificationOTP(ctx context.Context, email, otp string) error
	VerifySignupOTP(ctx context.Context, email, otp string) (bool, error)

	LogPriceChange(ctx context.Context, entry models.PriceLog) error
}

type sheetStore struct {
	api rowAPI
}

// New builds a Store over the configured spreadsheet. The underlying client
// is created lazily on first use and cached for the process lifetime.
func New(cfg config.SheetsConfig) Store {
	return &sheetStore{api: newSheetsAPI(cfg)}
}
