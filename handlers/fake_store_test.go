package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"

	"sweetshop/models"
	"sweetshop/sheetdb"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeStore satisfies sheetdb.Store with per-method hooks. Methods without a
// hook return their zero value so a handler under test never dials Sheets.
type fakeStore struct {
	verifyUser                func(email, password string) (models.User, error)
	getUserByEmail            func(email string) (models.User, error)
	createUser                func(user models.User) error
	listUsers                 func() ([]models.User, error)
	saveOTP                   func(email, otp string) error
	verifyOTPAndResetPassword func(email, otp, hash string) error

	getProducts   func() ([]models.Product, error)
	getProduct    func(id string) (models.Product, error)
	createProduct func(product models.Product) error
	updateProduct func(product models.Product, updatedBy string) error
	deleteProduct func(id string) error

	createOrder       func(order models.Order) (string, error)
	getOrder          func(orderID string) (models.Order, error)
	getOrdersByEmail  func(email string) ([]models.Order, error)
	getAllOrders      func() ([]models.Order, error)
	updateOrderStatus func(orderID string, status models.OrderStatus) error

	getShopSettings  func() (models.ShopSettings, error)
	saveShopSettings func(settings models.ShopSettings) error

	saveVerificationOTP func(email, otp string) error
	verifySignupOTP     func(email, otp string) (bool, error)

	logPriceChange func(entry models.PriceLog) error
}

func (f *fakeStore) VerifyUser(_ context.Context, email, password string) (models.User, error) {
	if f.verifyUser != nil {
		return f.verifyUser(email, password)
	}
	return models.User{}, sheetdb.ErrInvalidCredentials
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	if f.getUserByEmail != nil {
		return f.getUserByEmail(email)
	}
	return models.User{}, sheetdb.ErrNotFound
}

func (f *fakeStore) CreateUser(_ context.Context, user models.User) error {
	if f.createUser != nil {
		return f.createUser(user)
	}
	return nil
}

func (f *fakeStore) ListUsers(_ context.Context) ([]models.User, error) {
	if f.listUsers != nil {
		return f.listUsers()
	}
	return nil, nil
}

func (f *fakeStore) SaveOTP(_ context.Context, email, otp string) error {
	if f.saveOTP != nil {
		return f.saveOTP(email, otp)
	}
	return nil
}

func (f *fakeStore) VerifyOTPAndResetPassword(_ context.Context, email, otp, hash string) error {
	if f.verifyOTPAndResetPassword != nil {
		return f.verifyOTPAndResetPassword(email, otp, hash)
	}
	return nil
}

func (f *fakeStore) GetProducts(_ context.Context) ([]models.Product, error) {
	if f.getProducts != nil {
		return f.getProducts()
	}
	return nil, nil
}

func (f *fakeStore) GetProduct(_ context.Context, id string) (models.Product, error) {
	if f.getProduct != nil {
		return f.getProduct(id)
	}
	return models.Product{}, sheetdb.ErrNotFound
}

func (f *fakeStore) CreateProduct(_ context.Context, product models.Product) error {
	if f.createProduct != nil {
		return f.createProduct(product)
	}
	return nil
}

func (f *fakeStore) UpdateProduct(_ context.Context, product models.Product, updatedBy string) error {
	if f.updateProduct != nil {
		return f.updateProduct(product, updatedBy)
	}
	return nil
}

func (f *fakeStore) DeleteProduct(_ context.Context, id string) error {
	if f.deleteProduct != nil {
		return f.deleteProduct(id)
	}
	return nil
}

func (f *fakeStore) CreateOrder(_ context.Context, order models.Order) (string, error) {
	if f.createOrder != nil {
		return f.createOrder(order)
	}
	return "10000001", nil
}

func (f *fakeStore) GetOrder(_ context.Context, orderID string) (models.Order, error) {
	if f.getOrder != nil {
		return f.getOrder(orderID)
	}
	return models.Order{}, sheetdb.ErrNotFound
}

func (f *fakeStore) GetOrdersByEmail(_ context.Context, email string) ([]models.Order, error) {
	if f.getOrdersByEmail != nil {
		return f.getOrdersByEmail(email)
	}
	return nil, nil
}

func (f *fakeStore) GetAllOrders(_ context.Context) ([]models.Order, error) {
	if f.getAllOrders != nil {
		return f.getAllOrders()
	}
	return nil, nil
}

func (f *fakeStore) UpdateOrderStatus(_ context.Context, orderID string, status models.OrderStatus) error {
	if f.updateOrderStatus != nil {
		return f.updateOrderStatus(orderID, status)
	}
	return nil
}

func (f *fakeStore) GetShopSettings(_ context.Context) (models.ShopSettings, error) {
	if f.getShopSettings != nil {
		return f.getShopSettings()
	}
	return models.ShopSettings{}, nil
}

func (f *fakeStore) SaveShopSettings(_ context.Context, settings models.ShopSettings) error {
	if f.saveShopSettings != nil {
		return f.saveShopSettings(settings)
	}
	return nil
}

func (f *fakeStore) SaveVerificationOTP(_ context.Context, email, otp string) error {
	if f.saveVerificationOTP != nil {
		return f.saveVerificationOTP(email, otp)
	}
	return nil
}

func (f *fakeStore) VerifySignupOTP(_ context.Context, email, otp string) (bool, error) {
	if f.verifySignupOTP != nil {
		return f.verifySignupOTP(email, otp)
	}
	return false, nil
}

func (f *fakeStore) LogPriceChange(_ context.Context, entry models.PriceLog) error {
	if f.logPriceChange != nil {
		return f.logPriceChange(entry)
	}
	return nil
}

// doJSON runs a handler against a JSON request body and returns the recorder.
func doJSON(handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	router := gin.New()
	router.POST("/", handler)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// doAs is doJSON with a session identity preloaded into the request context.
func doAs(handler gin.HandlerFunc, email, role, method, body string) *httptest.ResponseRecorder {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if email != "" {
			c.Set("Email", email)
		}
		if role != "" {
			c.Set("Role", role)
		}
	})
	router.Handle(method, "/", handler)

	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
