package utils

const (
	// Emojis
	EmojiTick     = "✅"
	EmojiCross    = "❌"
	EmojiWarn     = "⚠️"
	EmojiLock     = "🔒"
	EmojiUnlock   = "🔓"
	EmojiGiveaway = "🎉"
	EmojiAFK      = "💤"

	// Colors
	ColorNeutral = 0x4C4C54
	ColorDark    = 0x2f3136
	ColorGreen   = 0x00FF00
	ColorRed     = 0xFF0000
)
