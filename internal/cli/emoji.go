package cli

import (
	"github.com/yildizm/facemood/internal/emoji"
)

// GetEmoji is a wrapper for the shared emoji package
func GetEmoji(key string) string {
	return emoji.GetEmoji(key)
}

// GetStatusEmoji returns the success or error symbol with fallback support
func GetStatusEmoji(ok bool) string {
	if ok {
		return GetEmoji("success")
	}
	return GetEmoji("error")
}
