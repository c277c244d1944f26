package hydrate

import (
	"context"

	"github.com/HTYISABUG/tgbot-hydrate/src/tgbot"
	"github.com/golang/glog"
)

// Update is an inbound update whose populated variant has been hydrated.
// The variant fields shadow the raw ones; at most one of them is set.
type Update struct {
	*tgbot.Update

	Message            *Message            `json:"-"`
	EditedMessage      *Message            `json:"-"`
	ChannelPost        *Message            `json:"-"`
	EditedChannelPost  *Message            `json:"-"`
	InlineQuery        *InlineQuery        `json:"-"`
	ChosenInlineResult *ChosenInlineResult `json:"-"`
	CallbackQuery      *CallbackQuery      `json:"-"`
	ShippingQuery      *ShippingQuery      `json:"-"`
	PreCheckoutQuery   *PreCheckoutQuery   `json:"-"`
	ChatJoinRequest    *ChatJoinRequest    `json:"-"`
}

// NewUpdate hydrates u.
func (c *Client) NewUpdate(u *tgbot.Update) *Update {
	h := &Update{Update: u}
	c.HydrateUpdate(h)
	return h
}

// HydrateUpdate (re)fills the variant field of u matching its raw update.
// Every other variant field is cleared. An update with no variant is left
// empty; one with several gets only the first, in tgbot.UpdateKind order.
func (c *Client) HydrateUpdate(u *Update) {
	if u == nil {
		return
	}

	*u = Update{Update: u.Update}
	if u.Update == nil {
		return
	}

	if kinds := u.Update.Kinds(); len(kinds) > 1 {
		glog.Warningf("update %d has %d variants %v, hydrating %v only", u.UpdateID, len(kinds), kinds, kinds[0])
	}

	raw := u.Update
	switch raw.Kind() {
	case tgbot.UpdateNone:
	case tgbot.UpdateMessage:
		u.Message = c.Message(raw.Message)
	case tgbot.UpdateChannelPost:
		u.ChannelPost = c.Message(raw.ChannelPost)
	case tgbot.UpdateEditedMessage:
		u.EditedMessage = c.Message(raw.EditedMessage)
	case tgbot.UpdateEditedChannelPost:
		u.EditedChannelPost = c.Message(raw.EditedChannelPost)
	case tgbot.UpdateInlineQuery:
		u.InlineQuery = c.InlineQuery(raw.InlineQuery)
	case tgbot.UpdateCallbackQuery:
		u.CallbackQuery = c.CallbackQuery(raw.CallbackQuery)
	case tgbot.UpdateShippingQuery:
		u.ShippingQuery = c.ShippingQuery(raw.ShippingQuery)
	case tgbot.UpdatePreCheckoutQuery:
		u.PreCheckoutQuery = c.PreCheckoutQuery(raw.PreCheckoutQuery)
	case tgbot.UpdateChosenInlineResult:
		u.ChosenInlineResult = c.ChosenInlineResult(raw.ChosenInlineResult)
	case tgbot.UpdateChatJoinRequest:
		u.ChatJoinRequest = c.ChatJoinRequest(raw.ChatJoinRequest)
	}
}

// Kind returns the variant that was hydrated.
func (u *Update) Kind() tgbot.UpdateKind {
	switch {
	case u.Message != nil:
		return tgbot.UpdateMessage
	case u.ChannelPost != nil:
		return tgbot.UpdateChannelPost
	case u.EditedMessage != nil:
		return tgbot.UpdateEditedMessage
	case u.EditedChannelPost != nil:
		return tgbot.UpdateEditedChannelPost
	case u.InlineQuery != nil:
		return tgbot.UpdateInlineQuery
	case u.CallbackQuery != nil:
		return tgbot.UpdateCallbackQuery
	case u.ShippingQuery != nil:
		return tgbot.UpdateShippingQuery
	case u.PreCheckoutQuery != nil:
		return tgbot.UpdatePreCheckoutQuery
	case u.ChosenInlineResult != nil:
		return tgbot.UpdateChosenInlineResult
	case u.ChatJoinRequest != nil:
		return tgbot.UpdateChatJoinRequest
	}
	return tgbot.UpdateNone
}

// HandlerFunc handles one hydrated update.
type HandlerFunc func(ctx context.Context, u *Update)

// Handle returns a raw update handler that hydrates each update before
// passing it on to next.
func (c *Client) Handle(next HandlerFunc) func(ctx context.Context, u tgbot.Update) {
	return func(ctx context.Context, u tgbot.Update) {
		next(ctx, c.NewUpdate(&u))
	}
}
