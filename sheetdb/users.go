package sheetdb

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"sweetshop/models"
)

// Column names match the live spreadsheet, mixed casing included.
var userColumns = []string{
	"email", "password_hash", "role", "name", "Gender", "Contact",
	"otp", "otp_expiry", "last_password_reset_at",
}

const otpValidity = 15 * time.Minute

func userFromRow(r row) models.User {
	return models.User{
		Email:               r.values["email"],
		PasswordHash:        r.values["password_hash"],
		Role:                r.values["role"],
		Name:                r.values["name"],
		Gender:              r.values["Gender"],
		Contact:             r.values["Contact"],
		OTP:                 r.values["otp"],
		OTPExpiry:           r.values["otp_expiry"],
		LastPasswordResetAt: r.values["last_password_reset_at"],
	}
}

func (s *sheetStore) findUserRow(ctx context.Context, email string) (row, error) {
	rows, err := s.api.readSheet(ctx, sheetUsers)
	if err != nil {
		return row{}, err
	}
	for _, r := range rows {
		if r.values["email"] == email {
			return r, nil
		}
	}
	return row{}, ErrNotFound
}

func (s *sheetStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	r, err := s.findUserRow(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	return userFromRow(r), nil
}

// VerifyUser checks email+password against the stored bcrypt hash. A missing
// user and a wrong password both return ErrInvalidCredentials so callers
// cannot enumerate accounts.
func (s *sheetStore) VerifyUser(ctx context.Context, email, password string) (models.User, error) {
	r, err := s.findUserRow(ctx, email)
	if err != nil {
		if err == ErrNotFound {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(r.values["password_hash"]), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}

	user := userFromRow(r)
	user.PasswordHash = ""
	return user, nil
}

func (s *sheetStore) CreateUser(ctx context.Context, user models.User) error {
	if err := s.api.ensureHeaders(ctx, sheetUsers, userColumns); err != nil {
		return err
	}

	if _, err := s.findUserRow(ctx, user.Email); err == nil {
		return ErrUserExists
	} else if err != ErrNotFound {
		return err
	}

	role := user.Role
	if role == "" {
		role = models.RoleCustomer
	}
	return s.api.appendRow(ctx, sheetUsers, map[string]string{
		"email":                  user.Email,
		"password_hash":          user.PasswordHash,
		"role":                   role,
		"name":                   user.Name,
		"Gender":                 user.Gender,
		"Contact":                user.Contact,
		"last_password_reset_at": "",
	})
}

func (s *sheetStore) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.api.readSheet(ctx, sheetUsers)
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(rows))
	for _, r := range rows {
		users = append(users, userFromRow(r))
	}
	return users, nil
}

// SaveOTP stores a password reset code on the user row with a 15 minute
// expiry, replacing any earlier one.
func (s *sheetStore) SaveOTP(ctx context.Context, email, otp string) error {
	if err := s.api.ensureHeaders(ctx, sheetUsers, userColumns); err != nil {
		return err
	}

	r, err := s.findUserRow(ctx, email)
	if err != nil {
		return err
	}

	r.values["otp"] = otp
	r.values["otp_expiry"] = expiryStamp()
	return s.api.updateRow(ctx, sheetUsers, r)
}

// VerifyOTPAndResetPassword replaces the password hash if the supplied code
// matches and is unexpired, clearing the OTP fields and stamping the reset
// time.
func (s *sheetStore) VerifyOTPAndResetPassword(ctx context.Context, email, otp, newPasswordHash string) error {
	r, err := s.findUserRow(ctx, email)
	if err != nil {
		return err
	}

	stored := r.values["otp"]
	if stored == "" || stored != otp {
		return ErrInvalidOTP
	}
	if expired(r.values["otp_expiry"]) {
		return ErrOTPExpired
	}

	r.values["password_hash"] = newPasswordHash
	r.values["otp"] = ""
	r.values["otp_expiry"] = ""
	r.values["last_password_reset_at"] = now().UTC().Format(time.RFC3339)
	return s.api.updateRow(ctx, sheetUsers, r)
}

// expiryStamp returns now+15m as unix milliseconds, the format the stored
// otp_expiry column already uses.
func expiryStamp() string {
	return strconv.FormatInt(now().Add(otpValidity).UnixMilli(), 10)
}

func expired(stamp string) bool {
	millis, err := strconv.ParseInt(stamp, 10, 64)
	if err != nil {
		return true
	}
	return now().UnixMilli() > millis
}
