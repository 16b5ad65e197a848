package emoji

import "strings"

// emojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"error":   {"❌", "[ERR]"},
	"warning": {"⚠️", "[WRN]"},
	"info":    {"ℹ️", "[INF]"},
	"success": {"✅", "[OK]"},
	"image":   {"🖼️", "[IMG]"},
	"drop":    {"📥", "[DROP]"},
	"results": {"📊", "[RES]"},
	"health":  {"🩺", "[HLT]"},
	"help":    {"❓", "[?]"},
	"door":    {"🚪", "[EXIT]"},

	"happy":    {"😊", "[HAPPY]"},
	"sad":      {"😢", "[SAD]"},
	"angry":    {"😠", "[ANGRY]"},
	"surprise": {"😮", "[SURPRISE]"},
	"fear":     {"😨", "[FEAR]"},
	"disgust":  {"🤢", "[DISGUST]"},
	"neutral":  {"😐", "[NEUTRAL]"},
	"contempt": {"😒", "[CONTEMPT]"},
}

// synonyms map label spellings servers commonly use onto the keys above
var synonyms = map[string]string{
	"happiness": "happy",
	"sadness":   "sad",
	"anger":     "angry",
	"surprised": "surprise",
	"fearful":   "fear",
	"disgusted": "disgust",
}

var emojiDisabled bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled = disabled
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled {
			return mapping[1]
		}
		return mapping[0]
	}
	return "[?]"
}

// ForEmotion returns the emoji for an emotion label. Unknown labels get an
// empty string so the label alone is shown.
func ForEmotion(label string) string {
	key := strings.ToLower(strings.TrimSpace(label))
	if alias, ok := synonyms[key]; ok {
		key = alias
	}
	if _, ok := emojiMap[key]; !ok || emojiDisabled {
		return ""
	}
	return emojiMap[key][0]
}
