package util

import "fmt"

// MaskSecret hides all but the last few characters of a secret for logging.
// Short values are fully masked so nothing useful leaks.
func MaskSecret(s string) string {
	if len(s) < 8 {
		return "****"
	}
	return fmt.Sprintf("****%s (%d chars)", s[len(s)-4:], len(s))
}
