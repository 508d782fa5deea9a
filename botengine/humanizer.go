package botengine

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TypingProfile estimates how long a person would take to type a reply. The gateway
// shows the "composing" presence for the delay it is given, so the estimate becomes the
// outbound options.delay.
type TypingProfile struct {
	BaseCharDelayMs    int
	PunctuationPauseMs int
	NewlinePauseMs     int
	EmojiPauseMs       int
	MinDelayMs         int
	MaxDelayMs         int
}

// DefaultProfile simulates an average human typer.
var DefaultProfile = TypingProfile{
	BaseCharDelayMs:    30,
	PunctuationPauseMs: 250,
	NewlinePauseMs:     300,
	EmojiPauseMs:       200,
	MinDelayMs:         800,
	MaxDelayMs:         6000,
}

// TypingDelayMs returns the typing time for text, clamped to the profile bounds.
// The result is deterministic so the same reply always gets the same delay.
func (p TypingProfile) TypingDelayMs(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return p.MinDelayMs
	}

	chars := utf8.RuneCountInString(text)
	perChar := p.BaseCharDelayMs
	// Short messages are typed in one burst.
	if chars < 20 && perChar > 4 {
		perChar -= 4
	}
	delay := chars * perChar

	runes := []rune(text)
	for i, r := range runes {
		switch {
		case r == '\n':
			delay += p.NewlinePauseMs
		case (r == '.' || r == '!' || r == '?') && i < len(runes)-1 && unicode.IsSpace(runes[i+1]):
			delay += p.PunctuationPauseMs
		case isEmoji(r):
			delay += p.EmojiPauseMs
		}
	}

	if delay < p.MinDelayMs {
		return p.MinDelayMs
	}
	if p.MaxDelayMs > 0 && delay > p.MaxDelayMs {
		return p.MaxDelayMs
	}
	return delay
}

func isEmoji(r rune) bool {
	return (r >= 0x1F600 && r <= 0x1F64F) || // Emoticons
		(r >= 0x1F300 && r <= 0x1F5FF) || // Misc Symbols and Pictographs
		(r >= 0x1F680 && r <= 0x1F6FF) || // Transport and Map
		(r >= 0x1F780 && r <= 0x1F7FF) || // Geometric Shapes Extended
		(r >= 0x1F900 && r <= 0x1F9FF) || // Supplemental Symbols and Pictographs
		(r >= 0x1FA70 && r <= 0x1FAFF) || // Symbols and Pictographs Extended-A
		(r >= 0x2600 && r <= 0x27BF) || // Misc symbols, Dingbats
		(r >= 0x1F1E0 && r <= 0x1F1FF) // Flags
}
