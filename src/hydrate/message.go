package hydrate

import (
	"context"

	"github.com/HTYISABUG/tgbot-hydrate/src/tgbot"
)

// Message is a message with operations bound to its chat id and message id.
// Chat and From are hydrated as well and shadow the raw fields. A Message
// marshals to JSON exactly like the raw message.
type Message struct {
	*tgbot.Message
	Editor

	Chat *Chat `json:"-"`
	From *User `json:"-"`

	c *Client
}

// Message hydrates m. It returns nil for a nil m.
func (c *Client) Message(m *tgbot.Message) *Message {
	if m == nil {
		return nil
	}

	var chatID int64
	if m.Chat != nil {
		chatID = m.Chat.ID
	}

	return &Message{
		Message: m,
		Editor: c.editor(tgbot.Params{
			"chat_id":    chatID,
			"message_id": m.MessageID,
		}),
		Chat: c.Chat(m.Chat),
		From: c.User(m.From),
		c:    c,
	}
}

// ChatID returns the id of the chat the message belongs to.
func (m *Message) ChatID() int64 {
	id, _ := m.target.ChatID()
	return id
}

func (m *Message) ref() tgbot.Params {
	return tgbot.Params{
		"chat_id":    m.target["chat_id"],
		"message_id": m.target["message_id"],
	}
}

// source identifies the message as the origin of a forward or copy.
func (m *Message) source(chatID int64) tgbot.Params {
	return tgbot.Params{
		"chat_id":      chatID,
		"from_chat_id": m.target["chat_id"],
		"message_id":   m.target["message_id"],
	}
}

func (m *Message) business() tgbot.Params {
	p := m.ref()
	if m.BusinessConnectionID != "" {
		p["business_connection_id"] = m.BusinessConnectionID
	}
	return p
}

// Forward forwards the message to chatID.
func (m *Message) Forward(ctx context.Context, chatID int64, other tgbot.Params) (*Message, error) {
	return asSent(m.c.bind("forwardMessage")(ctx, with(m.source(chatID), other)))
}

// Copy copies the message to chatID. The copy has no link to the original.
func (m *Message) Copy(ctx context.Context, chatID int64, other tgbot.Params) (*tgbot.MessageID, error) {
	id, err := as[tgbot.MessageID](m.c.bind("copyMessage")(ctx, with(m.source(chatID), other)))
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// Pin adds the message to the chat's pinned messages.
func (m *Message) Pin(ctx context.Context, other tgbot.Params) (bool, error) {
	return asBool(m.c.bind("pinChatMessage")(ctx, with(m.business(), other)))
}

// Unpin removes the message from the chat's pinned messages.
func (m *Message) Unpin(ctx context.Context, other tgbot.Params) (bool, error) {
	return asBool(m.c.bind("unpinChatMessage")(ctx, with(m.business(), other)))
}

// Delete deletes the message.
func (m *Message) Delete(ctx context.Context) (bool, error) {
	return asBool(m.c.bind("deleteMessage")(ctx, m.ref()))
}

// React replaces the bot's reactions on the message. reaction is anything
// NormalizeReactions accepts; nil removes all reactions.
func (m *Message) React(ctx context.Context, reaction interface{}, other tgbot.Params) (bool, error) {
	reactions, err := NormalizeReactions(reaction)
	if err != nil {
		return false, err
	}

	params := m.ref()
	params["reaction"] = reactions
	return asBool(m.c.bind("setMessageReaction")(ctx, with(params, other)))
}

// CustomEmojiIDs returns the custom emoji ids referenced by the message's
// entities, or by its caption entities when it has no text entities.
func (m *Message) CustomEmojiIDs() []string {
	entities := m.Entities
	if entities == nil {
		entities = m.CaptionEntities
	}

	var ids []string
	for _, e := range entities {
		if e.Type == tgbot.EntityCustomEmoji && e.CustomEmojiID != "" {
			ids = append(ids, e.CustomEmojiID)
		}
	}
	return ids
}

// CustomEmojiStickers returns the stickers of the custom emoji in the
// message. It makes no call when there are none.
func (m *Message) CustomEmojiStickers(ctx context.Context) ([]tgbot.Sticker, error) {
	ids := m.CustomEmojiIDs()
	if len(ids) == 0 {
		return []tgbot.Sticker{}, nil
	}

	return as[[]tgbot.Sticker](m.c.bind("getCustomEmojiStickers")(ctx, tgbot.Params{
		"custom_emoji_ids": ids,
	}))
}

// NormalizeReactions turns an emoji string, a tgbot.ReactionType or a pointer
// to one, or a slice of these into the list setMessageReaction expects. Strings become emoji
// reactions. nil yields an empty list.
func NormalizeReactions(reaction interface{}) ([]tgbot.ReactionType, error) {
	out := []tgbot.ReactionType{}

	switch r := reaction.(type) {
	case nil:
	case []string:
		for _, emoji := range r {
			out = append(out, emojiReaction(emoji))
		}
	case []tgbot.ReactionType:
		out = append(out, r...)
	case []*tgbot.ReactionType:
		for _, v := range r {
			one, err := normalizeReaction(v)
			if err != nil {
				return nil, err
			}
			out = append(out, one)
		}
	case []interface{}:
		for _, v := range r {
			one, err := normalizeReaction(v)
			if err != nil {
				return nil, err
			}
			out = append(out, one)
		}
	default:
		one, err := normalizeReaction(r)
		if err != nil {
			return nil, err
		}
		out = append(out, one)
	}

	return out, nil
}

func normalizeReaction(v interface{}) (tgbot.ReactionType, error) {
	switch r := v.(type) {
	case string:
		return emojiReaction(r), nil
	case tgbot.ReactionType:
		return r, nil
	case *tgbot.ReactionType:
		if r != nil {
			return *r, nil
		}
	}
	return tgbot.ReactionType{}, ErrUnsupportedReaction
}

func emojiReaction(emoji string) tgbot.ReactionType {
	return tgbot.ReactionType{Type: tgbot.ReactionEmoji, Emoji: emoji}
}
