package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strconv"
	"time"
)

// codeWindow is the validity window of a one-time code. There is no skew
// tolerance: a code is checked against its own window only.
const codeWindow = 30 * time.Second

// CodeAt derives the 6-digit one-time code for the window containing t.
//
// The construction is deliberately non-standard and must stay stable:
// HMAC-SHA256 over the decimal string of floor(unix/30) keyed by the raw
// secret bytes, dynamic truncation on the low nibble of the final digest
// byte, 31-bit big-endian read, reduced mod 1e6 and zero-padded. Codes
// issued by other deployments of this scheme verify against it bit-for-bit.
func CodeAt(secret string, t time.Time) string {
	window := t.Unix() / int64(codeWindow/time.Second)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(window, 10)))
	digest := mac.Sum(nil)

	offset := digest[len(digest)-1] & 0x0F
	code := binary.BigEndian.Uint32(digest[offset:offset+4]) & 0x7FFFFFFF
	return fmt.Sprintf("%06d", code%1000000)
}

// CodeNow derives the code for the current window.
func CodeNow(secret string) string {
	return CodeAt(secret, time.Now())
}

// OTPAuthURL builds the provisioning URL encoded into the enrollment QR code.
func OTPAuthURL(email, secret string) string {
	return fmt.Sprintf("otpauth://totp/VTCalendar:%s?secret=%s&issuer=VTCalendar", email, secret)
}
