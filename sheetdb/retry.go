package sheetdb

import (
	"log"
	"time"
)

const maxRetries = 3

// Shortened by tests.
var retryDelay = time.Second

// withRetry runs op up to maxRetries times, sleeping attempt*retryDelay
// between failures, and returns the last error once attempts are exhausted.
// Every remote spreadsheet call goes through here.
func withRetry(name string, op func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := op(); err != nil {
			log.Printf("[DB] %s failed (attempt %d/%d): %v", name, attempt, maxRetries, err)
			lastErr = err
			if attempt < maxRetries {
				time.Sleep(time.Duration(attempt) * retryDelay)
			}
			continue
		}
		return nil
	}
	return lastErr
}
