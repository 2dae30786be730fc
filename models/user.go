package models

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	Email               string `json:"email"`
	PasswordHash        string `json:"-"`
	Role                string `json:"role"`
	Name                string `json:"name"`
	Gender              string `json:"gender,omitempty"`
	Contact             string `json:"contact,omitempty"`
	OTP                 string `json:"-"`
	OTPExpiry           string `json:"-"`
	LastPasswordResetAt string `json:"-"`
}
