package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Sessions are short-lived; role changes take effect within this window.
const SessionTTL = 10 * time.Minute

// GenerateToken mints an HS256 session token carrying the user's email and
// role. The role must come from the store at mint time, not from an older
// token, so revoked privileges do not stick.
func GenerateToken(secret, email, role string, expTime int64) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["email"] = email
	claims["role"] = role
	claims["exp"] = expTime

	return token.SignedString([]byte(secret))
}

// VerifyToken validates a session token and returns the embedded email and
// role.
func VerifyToken(secret, tokenString string) (string, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", err
	}
	if !token.Valid {
		return "", "", jwt.ErrTokenSignatureInvalid
	}

	claims := token.Claims.(jwt.MapClaims)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return email, role, nil
}
