package tgbot

// Update is an incoming update. At most one of the optional variant fields is
// set on any given update.
type Update struct {
	UpdateID int `json:"update_id"`

	Message            *Message            `json:"message,omitempty"`
	EditedMessage      *Message            `json:"edited_message,omitempty"`
	ChannelPost        *Message            `json:"channel_post,omitempty"`
	EditedChannelPost  *Message            `json:"edited_channel_post,omitempty"`
	InlineQuery        *InlineQuery        `json:"inline_query,omitempty"`
	ChosenInlineResult *ChosenInlineResult `json:"chosen_inline_result,omitempty"`
	CallbackQuery      *CallbackQuery      `json:"callback_query,omitempty"`
	ShippingQuery      *ShippingQuery      `json:"shipping_query,omitempty"`
	PreCheckoutQuery   *PreCheckoutQuery   `json:"pre_checkout_query,omitempty"`
	ChatJoinRequest    *ChatJoinRequest    `json:"chat_join_request,omitempty"`
}

// UpdateKind tags the populated variant of an Update. The declaration order
// is the order in which variants are tested.
type UpdateKind int

const (
	UpdateNone UpdateKind = iota
	UpdateMessage
	UpdateChannelPost
	UpdateEditedMessage
	UpdateEditedChannelPost
	UpdateInlineQuery
	UpdateCallbackQuery
	UpdateShippingQuery
	UpdatePreCheckoutQuery
	UpdateChosenInlineResult
	UpdateChatJoinRequest
)

var updateKindNames = [...]string{
	UpdateNone:               "none",
	UpdateMessage:            "message",
	UpdateChannelPost:        "channel_post",
	UpdateEditedMessage:      "edited_message",
	UpdateEditedChannelPost:  "edited_channel_post",
	UpdateInlineQuery:        "inline_query",
	UpdateCallbackQuery:      "callback_query",
	UpdateShippingQuery:      "shipping_query",
	UpdatePreCheckoutQuery:   "pre_checkout_query",
	UpdateChosenInlineResult: "chosen_inline_result",
	UpdateChatJoinRequest:    "chat_join_request",
}

func (k UpdateKind) String() string {
	if k < 0 || int(k) >= len(updateKindNames) {
		return "unknown"
	}
	return updateKindNames[k]
}

// Kinds returns every populated variant of u in test order. A well-formed
// update yields at most one.
func (u *Update) Kinds() []UpdateKind {
	if u == nil {
		return nil
	}

	present := [...]bool{
		UpdateMessage:            u.Message != nil,
		UpdateChannelPost:        u.ChannelPost != nil,
		UpdateEditedMessage:      u.EditedMessage != nil,
		UpdateEditedChannelPost:  u.EditedChannelPost != nil,
		UpdateInlineQuery:        u.InlineQuery != nil,
		UpdateCallbackQuery:      u.CallbackQuery != nil,
		UpdateShippingQuery:      u.ShippingQuery != nil,
		UpdatePreCheckoutQuery:   u.PreCheckoutQuery != nil,
		UpdateChosenInlineResult: u.ChosenInlineResult != nil,
		UpdateChatJoinRequest:    u.ChatJoinRequest != nil,
	}

	var kinds []UpdateKind
	for k, ok := range present {
		if ok {
			kinds = append(kinds, UpdateKind(k))
		}
	}
	return kinds
}

// Kind returns the first populated variant of u, or UpdateNone.
func (u *Update) Kind() UpdateKind {
	if kinds := u.Kinds(); len(kinds) > 0 {
		return kinds[0]
	}
	return UpdateNone
}

// SentFrom returns the user the update originates from, if any.
func (u *Update) SentFrom() *User {
	switch u.Kind() {
	case UpdateMessage:
		return u.Message.From
	case UpdateEditedMessage:
		return u.EditedMessage.From
	case UpdateChannelPost:
		return u.ChannelPost.From
	case UpdateEditedChannelPost:
		return u.EditedChannelPost.From
	case UpdateInlineQuery:
		return u.InlineQuery.From
	case UpdateCallbackQuery:
		return u.CallbackQuery.From
	case UpdateShippingQuery:
		return u.ShippingQuery.From
	case UpdatePreCheckoutQuery:
		return u.PreCheckoutQuery.From
	case UpdateChosenInlineResult:
		return u.ChosenInlineResult.From
	case UpdateChatJoinRequest:
		return u.ChatJoinRequest.From
	}
	return nil
}
