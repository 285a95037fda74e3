package language

import "time"

// Language represents a spoken/written language supported by the system.
//
// Exactly one language carries the default flag at any time; it is the
// fallback target for translation resolution.
type Language struct {
	ID         int       `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	NativeName string    `json:"native_name"`
	IsDefault  bool      `json:"is_default"`
	IsRTL      bool      `json:"is_rtl"`
	CreatedAt  time.Time `json:"-"`
}
