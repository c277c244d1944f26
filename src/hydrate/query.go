package hydrate

import (
	"context"

	"github.com/HTYISABUG/tgbot-hydrate/src/tgbot"
)

// CallbackQuery is a callback query with its originating message hydrated.
// At most one of Message and InlineMessage is set.
type CallbackQuery struct {
	*tgbot.CallbackQuery

	From          *User          `json:"-"`
	Message       *Message       `json:"-"`
	InlineMessage *InlineMessage `json:"-"`

	c *Client
}

// CallbackQuery hydrates q. The full message wins over the inline message id
// when both are somehow present. It returns nil for a nil q.
func (c *Client) CallbackQuery(q *tgbot.CallbackQuery) *CallbackQuery {
	if q == nil {
		return nil
	}

	h := &CallbackQuery{CallbackQuery: q, From: c.User(q.From), c: c}
	switch {
	case q.Message != nil:
		h.Message = c.Message(q.Message)
	case q.InlineMessageID != "":
		h.InlineMessage = c.InlineMessage(&tgbot.InlineMessage{InlineMessageID: q.InlineMessageID})
	}
	return h
}

// Answer answers the query. text, show_alert, url and cache_time go in
// other.
func (q *CallbackQuery) Answer(ctx context.Context, other tgbot.Params) (bool, error) {
	return asBool(q.c.bind("answerCallbackQuery")(ctx, with(tgbot.Params{"callback_query_id": q.ID}, other)))
}

// InlineQuery is an inline query that can be answered.
type InlineQuery struct {
	*tgbot.InlineQuery

	From *User `json:"-"`

	c *Client
}

// InlineQuery hydrates q. It returns nil for a nil q.
func (c *Client) InlineQuery(q *tgbot.InlineQuery) *InlineQuery {
	if q == nil {
		return nil
	}
	return &InlineQuery{InlineQuery: q, From: c.User(q.From), c: c}
}

// Answer sends results for the query. Each result is encoded as is, so any
// value that marshals to an InlineQueryResult will do.
func (q *InlineQuery) Answer(ctx context.Context, results []interface{}, other tgbot.Params) (bool, error) {
	if results == nil {
		results = []interface{}{}
	}
	return asBool(q.c.bind("answerInlineQuery")(ctx, with(tgbot.Params{
		"inline_query_id": q.ID,
		"results":         results,
	}, other)))
}

// ChosenInlineResult is an inline result picked by a user. It has no
// operations of its own; the sent message can be edited through
// InlineMessage when the result carried a keyboard.
type ChosenInlineResult struct {
	*tgbot.ChosenInlineResult

	From          *User          `json:"-"`
	InlineMessage *InlineMessage `json:"-"`
}

// ChosenInlineResult hydrates r. It returns nil for a nil r.
func (c *Client) ChosenInlineResult(r *tgbot.ChosenInlineResult) *ChosenInlineResult {
	if r == nil {
		return nil
	}

	h := &ChosenInlineResult{ChosenInlineResult: r, From: c.User(r.From)}
	if r.InlineMessageID != "" {
		h.InlineMessage = c.InlineMessage(&tgbot.InlineMessage{InlineMessageID: r.InlineMessageID})
	}
	return h
}

// ShippingQuery is a shipping query for an invoice with a flexible price.
type ShippingQuery struct {
	*tgbot.ShippingQuery

	From *User `json:"-"`

	c *Client
}

// ShippingQuery hydrates q. It returns nil for a nil q.
func (c *Client) ShippingQuery(q *tgbot.ShippingQuery) *ShippingQuery {
	if q == nil {
		return nil
	}
	return &ShippingQuery{ShippingQuery: q, From: c.User(q.From), c: c}
}

// Answer accepts or rejects the shipping address. shipping_options is
// expected in other when ok, error_message when not.
func (q *ShippingQuery) Answer(ctx context.Context, ok bool, other tgbot.Params) (bool, error) {
	return asBool(q.c.bind("answerShippingQuery")(ctx, with(tgbot.Params{
		"shipping_query_id": q.ID,
		"ok":                ok,
	}, other)))
}

// PreCheckoutQuery is the final confirmation request before a payment.
type PreCheckoutQuery struct {
	*tgbot.PreCheckoutQuery

	From *User `json:"-"`

	c *Client
}

// PreCheckoutQuery hydrates q. It returns nil for a nil q.
func (c *Client) PreCheckoutQuery(q *tgbot.PreCheckoutQuery) *PreCheckoutQuery {
	if q == nil {
		return nil
	}
	return &PreCheckoutQuery{PreCheckoutQuery: q, From: c.User(q.From), c: c}
}

// Answer confirms or rejects the checkout. It must be called within ten
// seconds of the query arriving.
func (q *PreCheckoutQuery) Answer(ctx context.Context, ok bool, other tgbot.Params) (bool, error) {
	return asBool(q.c.bind("answerPreCheckoutQuery")(ctx, with(tgbot.Params{
		"pre_checkout_query_id": q.ID,
		"ok":                    ok,
	}, other)))
}

// ChatJoinRequest is a request to join a chat that the bot can decide on.
type ChatJoinRequest struct {
	*tgbot.ChatJoinRequest

	Chat *Chat   `json:"-"`
	From *Member `json:"-"`

	c *Client
}

// ChatJoinRequest hydrates r. It returns nil for a nil r.
func (c *Client) ChatJoinRequest(r *tgbot.ChatJoinRequest) *ChatJoinRequest {
	if r == nil {
		return nil
	}

	var chatID int64
	if r.Chat != nil {
		chatID = r.Chat.ID
	}
	return &ChatJoinRequest{
		ChatJoinRequest: r,
		Chat:            c.Chat(r.Chat),
		From:            c.Member(r.From, chatID),
		c:               c,
	}
}

func (r *ChatJoinRequest) decide(ctx context.Context, method string, other tgbot.Params) (bool, error) {
	var chatID, userID int64
	if r.ChatJoinRequest.Chat != nil {
		chatID = r.ChatJoinRequest.Chat.ID
	}
	if r.ChatJoinRequest.From != nil {
		userID = r.ChatJoinRequest.From.ID
	}
	return asBool(r.c.bind(method)(ctx, with(tgbot.Params{"chat_id": chatID, "user_id": userID}, other)))
}

// Approve lets the user into the chat.
func (r *ChatJoinRequest) Approve(ctx context.Context, other tgbot.Params) (bool, error) {
	return r.decide(ctx, "approveChatJoinRequest", other)
}

// Decline rejects the request.
func (r *ChatJoinRequest) Decline(ctx context.Context, other tgbot.Params) (bool, error) {
	return r.decide(ctx, "declineChatJoinRequest", other)
}
