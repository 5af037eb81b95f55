// Package qr handles match sharing: UUID validation for scanned or typed
// identifiers, and QR image generation for a validated one.
package qr

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

// DefaultImageSize is the QR PNG edge length in pixels.
const DefaultImageSize = 256

// UUID v4: 8-4-4-4-12 hex with the version nibble fixed to 4 and the variant
// nibble in 8..b.
var uuidV4Pattern = regexp.MustCompile(`^(?i)[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// ValidateUUID reports whether s is a well-formed UUID v4 string,
// case-insensitively.
func ValidateUUID(s string) bool {
	if !uuidV4Pattern.MatchString(s) {
		return false
	}

	parsed, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return parsed.Version() == 4 && parsed.String() == strings.ToLower(s)
}

// ExtractUUIDFromScan cleans up raw QR scan data and returns the contained
// match id, or "" if the payload is not a valid UUID v4.
func ExtractUUIDFromScan(scanResult string) string {
	cleaned := strings.TrimSpace(scanResult)
	if !ValidateUUID(cleaned) {
		return ""
	}
	return cleaned
}

// GenerateQRCode encodes a validated match id as a PNG image with low error
// correction.
func GenerateQRCode(matchUUID string) ([]byte, error) {
	return qrcode.Encode(matchUUID, qrcode.Low, DefaultImageSize)
}
