package handlers

import (
	"crypto/rand"
	"errors"
	"math/big"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"sweetshop/jwt"
	"sweetshop/mailer"
	"sweetshop/models"
	"sweetshop/sheetdb"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// GenerateOTP draws a 6-digit code uniformly from [100000, 999999].
func GenerateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand failing means the process is in serious trouble.
		panic(err)
	}
	return big.NewInt(0).Add(n, big.NewInt(100000)).String()
}

// SendVerificationHandler starts the two-phase signup: it refuses known
// addresses, then stores and emails a fresh OTP.
func SendVerificationHandler(c *gin.Context, store sheetdb.Store, mail *mailer.Mailer) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Email is required",
		})
		return
	}
	if !ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid email address",
		})
		return
	}

	_, err := store.GetUserByEmail(c, req.Email)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": "User already exists. Please sign in.",
		})
		return
	}
	if !errors.Is(err, sheetdb.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to send verification code",
		})
		return
	}

	otp := GenerateOTP()
	if err := store.SaveVerificationOTP(c, req.Email, otp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to send verification code",
		})
		return
	}
	if err := mail.SendVerificationEmail(req.Email, otp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to send verification code",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Verification code sent",
	})
}

// SignupHandler completes signup once the emailed OTP checks out.
func SignupHandler(c *gin.Context, store sheetdb.Store) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		OTP      string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing fields",
		})
		return
	}

	ok, err := store.VerifySignupOTP(c, req.Email, req.OTP)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal Server Error",
		})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid or expired OTP",
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal Server Error",
		})
		return
	}

	err = store.CreateUser(c, models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         models.RoleCustomer,
	})
	if errors.Is(err, sheetdb.ErrUserExists) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "User already exists",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal Server Error",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
	})
}

// LoginHandler checks credentials and mints a session token. The role claim
// comes straight from the Users sheet so a demotion shows up on the next
// login.
func LoginHandler(c *gin.Context, store sheetdb.Store, jwtSecret string) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing email or password",
		})
		return
	}

	user, err := store.VerifyUser(c, req.Email, req.Password)
	if errors.Is(err, sheetdb.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid email or password",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal Server Error",
		})
		return
	}

	expTime := time.Now().Add(jwt.SessionTTL).Unix()
	token, err := jwt.GenerateToken(jwtSecret, user.Email, user.Role, expTime)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create session",
		})
		return
	}

	c.Header("Authorization", "Bearer "+token)
	c.JSON(http.StatusOK, gin.H{
		"message": "Signed in",
		"name":    user.Name,
		"role":    user.Role,
	})
}

// RequestPasswordResetHandler mails a reset OTP. Unknown addresses get the
// same response as known ones.
func RequestPasswordResetHandler(c *gin.Context, store sheetdb.Store, mail *mailer.Mailer) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Email is required",
		})
		return
	}

	_, err := store.GetUserByEmail(c, req.Email)
	if errors.Is(err, sheetdb.ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{
			"message": "If an account exists, a reset code has been sent.",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal Server Error",
		})
		return
	}

	otp := GenerateOTP()
	if err := store.SaveOTP(c, req.Email, otp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal Server Error",
		})
		return
	}

	if err := mail.SendPasswordResetEmail(req.Email, otp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to send OTP email.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OTP sent to your email.",
	})
}

// ConfirmPasswordResetHandler swaps in the new password if the OTP matches
// and is unexpired.
func ConfirmPasswordResetHandler(c *gin.Context, store sheetdb.Store) {
	var req struct {
		Email       string `json:"email" binding:"required"`
		OTP         string `json:"otp" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing fields",
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal Server Error",
		})
		return
	}

	err = store.VerifyOTPAndResetPassword(c, req.Email, req.OTP, string(hash))
	switch {
	case errors.Is(err, sheetdb.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "User not found",
		})
		return
	case errors.Is(err, sheetdb.ErrInvalidOTP):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid OTP",
		})
		return
	case errors.Is(err, sheetdb.ErrOTPExpired):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "OTP Expired",
		})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal Server Error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password updated successfully",
	})
}

// GetRoleHandler looks up the session user's current role. On store trouble
// it degrades to customer instead of failing, so a flaky spreadsheet call
// cannot lock the whole UI.
func GetRoleHandler(c *gin.Context, store sheetdb.Store) {
	email, ok := c.Get("Email")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"role": nil,
		})
		return
	}

	user, err := store.GetUserByEmail(c, email.(string))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"role": models.RoleCustomer,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"role": user.Role,
	})
}

// GetUserListHandler returns the registered users for the admin dashboard.
func GetUserListHandler(c *gin.Context, store sheetdb.Store) {
	users, err := store.ListUsers(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch users",
		})
		return
	}

	userList := make([]gin.H, 0, len(users))
	for _, user := range users {
		userList = append(userList, gin.H{
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"userList": userList,
	})
}
