package tgbot

import (
	"fmt"

	api "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ParseModeMarkdownV2 is the parse_mode value for MarkdownV2 text.
const ParseModeMarkdownV2 = api.ModeMarkdownV2

// BoldText transforms text into telegram bold text.
func BoldText(text string) string {
	return fmt.Sprintf("*%s*", text)
}

// ItalicText transforms text into telegram italic text.
func ItalicText(text string) string {
	return fmt.Sprintf("_%s_", text)
}

// InlineCode transforms text into telegram inline code.
func InlineCode(text string) string {
	return fmt.Sprintf("`%s`", text)
}

// InlineLink combines text and link into telegram inline link.
func InlineLink(text, link string) string {
	return fmt.Sprintf("[%s](%s)", text, link)
}

// Mention links text to the profile of user id.
func Mention(text string, id int64) string {
	return InlineLink(text, fmt.Sprintf("tg://user?id=%d", id))
}

// EscapeText escapes MarkdownV2 symbols in text.
// Don't pass formatted text in, or the formatting is escaped too.
func EscapeText(text string) string {
	return api.EscapeText(api.ModeMarkdownV2, text)
}
