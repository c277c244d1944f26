package hydrate

import (
	"context"

	"github.com/HTYISABUG/tgbot-hydrate/src/tgbot"
)

// Editor holds the edit operations shared by full messages and inline
// messages. Its target is either chat_id and message_id or
// inline_message_id, fixed when the entity is hydrated.
//
// Every edit returns the edited message, or nil when the platform answers
// with true as it does for inline messages.
type Editor struct {
	c      *Client
	target tgbot.Params
}

func (c *Client) editor(target tgbot.Params) Editor {
	return Editor{c: c, target: target}
}

// Target returns a copy of the identifying parameters edits are sent with.
func (e Editor) Target() tgbot.Params {
	return e.target.Clone()
}

func (e Editor) args(explicit, other tgbot.Params) tgbot.Params {
	return with(with(e.target, explicit), other)
}

// EditText calls editMessageText.
func (e Editor) EditText(ctx context.Context, text string, other tgbot.Params) (*Message, error) {
	return asMessage(e.c.bind("editMessageText")(ctx, e.args(tgbot.Params{"text": text}, other)))
}

// EditCaption calls editMessageCaption. An empty caption removes it.
func (e Editor) EditCaption(ctx context.Context, caption string, other tgbot.Params) (*Message, error) {
	return asMessage(e.c.bind("editMessageCaption")(ctx, e.args(tgbot.Params{"caption": caption}, other)))
}

// EditMedia calls editMessageMedia. media is one of the tgbot.InputMedia*
// types; a file that needs uploading is sent along with the request.
func (e Editor) EditMedia(ctx context.Context, media interface{}, other tgbot.Params) (*Message, error) {
	return asMessage(e.c.bind("editMessageMedia")(ctx, e.args(tgbot.Params{"media": media}, other)))
}

// EditReplyMarkup calls editMessageReplyMarkup. A nil markup removes the
// keyboard.
func (e Editor) EditReplyMarkup(ctx context.Context, markup *tgbot.InlineKeyboardMarkup) (*Message, error) {
	params := e.Target()
	if markup != nil {
		params["reply_markup"] = markup
	}
	return asMessage(e.c.bind("editMessageReplyMarkup")(ctx, params))
}

// EditLiveLocation calls editMessageLiveLocation.
func (e Editor) EditLiveLocation(ctx context.Context, latitude, longitude float64, other tgbot.Params) (*Message, error) {
	return asMessage(e.c.bind("editMessageLiveLocation")(ctx, e.args(tgbot.Params{
		"latitude":  latitude,
		"longitude": longitude,
	}, other)))
}

// StopLiveLocation calls stopMessageLiveLocation.
func (e Editor) StopLiveLocation(ctx context.Context, other tgbot.Params) (*Message, error) {
	return asMessage(e.c.bind("stopMessageLiveLocation")(ctx, e.args(nil, other)))
}

// InlineMessage is a message sent via inline mode. Only edits apply to it.
type InlineMessage struct {
	*tgbot.InlineMessage
	Editor
}

// InlineMessage hydrates m. It returns nil for a nil m.
func (c *Client) InlineMessage(m *tgbot.InlineMessage) *InlineMessage {
	if m == nil {
		return nil
	}
	return &InlineMessage{
		InlineMessage: m,
		Editor:        c.editor(tgbot.Params{"inline_message_id": m.InlineMessageID}),
	}
}
