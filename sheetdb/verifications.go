package sheetdb

import (
	"context"
	"time"
)

var verificationColumns = []string{"email", "otp", "expiry", "created_at"}

// SaveVerificationOTP stores a signup verification code with a 15 minute
// expiry, replacing any earlier code for the same address.
func (s *sheetStore) SaveVerificationOTP(ctx context.Context, email, otp string) error {
	if err := s.api.ensureSheet(ctx, sheetVerifications, verificationColumns); err != nil {
		return err
	}

	rows, err := s.api.readSheet(ctx, sheetVerifications)
	if err != nil {
		return err
	}

	for _, r := range rows {
		if r.values["email"] == email {
			r.values["otp"] = otp
			r.values["expiry"] = expiryStamp()
			r.values["created_at"] = now().UTC().Format(time.RFC3339)
			return s.api.updateRow(ctx, sheetVerifications, r)
		}
	}

	return s.api.appendRow(ctx, sheetVerifications, map[string]string{
		"email":      email,
		"otp":        otp,
		"expiry":     expiryStamp(),
		"created_at": now().UTC().Format(time.RFC3339),
	})
}

// VerifySignupOTP reports whether the code matches and is unexpired. The
// verification row is deleted on success, so a code can be used once.
func (s *sheetStore) VerifySignupOTP(ctx context.Context, email, otp string) (bool, error) {
	rows, err := s.api.readSheet(ctx, sheetVerifications)
	if err != nil {
		return false, err
	}

	for _, r := range rows {
		if r.values["email"] != email {
			continue
		}
		if r.values["otp"] == otp && !expired(r.values["expiry"]) {
			if err := s.api.deleteRow(ctx, sheetVerifications, r.index); err != nil {
				return false, err
			}
			return true, nil
		}
		return false, nil
	}
	return false, nil
}
