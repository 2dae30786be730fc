package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"sweetshop/models"
	"sweetshop/sheetdb"
)

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 200; i++ {
		otp := GenerateOTP()
		if len(otp) != 6 {
			t.Fatalf("expected 6 digits, got %q", otp)
		}
		n, err := strconv.Atoi(otp)
		if err != nil || n < 100000 || n > 999999 {
			t.Fatalf("OTP out of range: %q", otp)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"alice@example.com", "a.b+tag@sweets.co.in"}
	invalid := []string{"", "alice", "alice@", "@example.com", "a b@example.com"}

	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}

func TestSendVerificationExistingUser(t *testing.T) {
	store := &fakeStore{
		getUserByEmail: func(email string) (models.User, error) {
			return models.User{Email: email}, nil
		},
	}

	w := doJSON(func(c *gin.Context) {
		SendVerificationHandler(c, store, nil)
	}, `{"email":"alice@example.com"}`)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Please sign in") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestSendVerificationRejectsBadEmail(t *testing.T) {
	w := doJSON(func(c *gin.Context) {
		SendVerificationHandler(c, &fakeStore{}, nil)
	}, `{"email":"not-an-email"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSignupBadOTP(t *testing.T) {
	store := &fakeStore{
		verifySignupOTP: func(string, string) (bool, error) { return false, nil },
	}

	w := doJSON(func(c *gin.Context) {
		SignupHandler(c, store)
	}, `{"name":"Alice","email":"alice@example.com","password":"hunter22","otp":"111111"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSignupCreatesCustomer(t *testing.T) {
	var created models.User
	store := &fakeStore{
		verifySignupOTP: func(string, string) (bool, error) { return true, nil },
		createUser: func(user models.User) error {
			created = user
			return nil
		},
	}

	w := doJSON(func(c *gin.Context) {
		SignupHandler(c, store)
	}, `{"name":"Alice","email":"alice@example.com","password":"hunter22","otp":"482913"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if created.Role != models.RoleCustomer {
		t.Errorf("new accounts must be customers, got %q", created.Role)
	}
	if created.PasswordHash == "hunter22" || created.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
}

func TestSignupDuplicateUser(t *testing.T) {
	store := &fakeStore{
		verifySignupOTP: func(string, string) (bool, error) { return true, nil },
		createUser:      func(models.User) error { return sheetdb.ErrUserExists },
	}

	w := doJSON(func(c *gin.Context) {
		SignupHandler(c, store)
	}, `{"name":"Alice","email":"alice@example.com","password":"hunter22","otp":"482913"}`)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	w := doJSON(func(c *gin.Context) {
		LoginHandler(c, &fakeStore{}, "test-secret")
	}, `{"email":"alice@example.com","password":"wrong"}`)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid email or password") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestLoginIssuesToken(t *testing.T) {
	store := &fakeStore{
		verifyUser: func(email, password string) (models.User, error) {
			return models.User{Email: email, Name: "Alice", Role: models.RoleAdmin}, nil
		},
	}

	w := doJSON(func(c *gin.Context) {
		LoginHandler(c, store, "test-secret")
	}, `{"email":"alice@example.com","password":"hunter22"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if auth := w.Header().Get("Authorization"); !strings.HasPrefix(auth, "Bearer ") {
		t.Errorf("expected a bearer token, got %q", auth)
	}

	var resp struct {
		Name string `json:"name"`
		Role string `json:"role"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Name != "Alice" || resp.Role != models.RoleAdmin {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	saveCalls := 0
	store := &fakeStore{
		saveOTP: func(string, string) error { saveCalls++; return nil },
	}

	// Unknown address gets the same 200 as a known one, and no OTP write.
	w := doJSON(func(c *gin.Context) {
		RequestPasswordResetHandler(c, store, nil)
	}, `{"email":"nobody@example.com"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if saveCalls != 0 {
		t.Error("no OTP may be stored for an unknown address")
	}
}

func TestConfirmPasswordReset(t *testing.T) {
	cases := []struct {
		name     string
		storeErr error
		wantCode int
	}{
		{"success", nil, http.StatusOK},
		{"unknown user", sheetdb.ErrNotFound, http.StatusNotFound},
		{"wrong otp", sheetdb.ErrInvalidOTP, http.StatusBadRequest},
		{"expired otp", sheetdb.ErrOTPExpired, http.StatusBadRequest},
		{"store failure", errors.New("sheets unavailable"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeStore{
				verifyOTPAndResetPassword: func(_, _, hash string) error {
					if hash == "NewPass9" {
						t.Error("new password must arrive hashed")
					}
					return tc.storeErr
				},
			}
			w := doJSON(func(c *gin.Context) {
				ConfirmPasswordResetHandler(c, store)
			}, `{"email":"alice@example.com","otp":"482913","newPassword":"NewPass9"}`)

			if w.Code != tc.wantCode {
				t.Errorf("expected %d, got %d: %s", tc.wantCode, w.Code, w.Body.String())
			}
		})
	}
}

func TestGetRoleDegradesToCustomer(t *testing.T) {
	store := &fakeStore{
		getUserByEmail: func(string) (models.User, error) {
			return models.User{}, errors.New("sheets unavailable")
		},
	}

	w := doAs(func(c *gin.Context) {
		GetRoleHandler(c, store)
	}, "alice@example.com", "", http.MethodGet, "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Role != models.RoleCustomer {
		t.Errorf("expected customer fallback, got %q", resp.Role)
	}
}
