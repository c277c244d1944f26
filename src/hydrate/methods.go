package hydrate

import (
	"context"

	"github.com/HTYISABUG/tgbot-hydrate/src/tgbot"
)

// SendMessage sends text to chatID.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, other tgbot.Params) (*Message, error) {
	return asSent(c.Call(ctx, "sendMessage", with(tgbot.Params{"chat_id": chatID, "text": text}, other)))
}

// ForwardMessage forwards messageID from fromChatID to chatID.
func (c *Client) ForwardMessage(ctx context.Context, chatID, fromChatID int64, messageID int, other tgbot.Params) (*Message, error) {
	return asSent(c.Call(ctx, "forwardMessage", with(tgbot.Params{
		"chat_id":      chatID,
		"from_chat_id": fromChatID,
		"message_id":   messageID,
	}, other)))
}

// CopyMessage copies messageID from fromChatID to chatID.
func (c *Client) CopyMessage(ctx context.Context, chatID, fromChatID int64, messageID int, other tgbot.Params) (*tgbot.MessageID, error) {
	id, err := as[tgbot.MessageID](c.Call(ctx, "copyMessage", with(tgbot.Params{
		"chat_id":      chatID,
		"from_chat_id": fromChatID,
		"message_id":   messageID,
	}, other)))
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// SendPhoto sends a photo. photo is a file id, a URL or a tgbot.InputFile.
func (c *Client) SendPhoto(ctx context.Context, chatID int64, photo interface{}, other tgbot.Params) (*Message, error) {
	return c.sendFile(ctx, "sendPhoto", "photo", chatID, photo, other)
}

// SendDocument sends a general file.
func (c *Client) SendDocument(ctx context.Context, chatID int64, document interface{}, other tgbot.Params) (*Message, error) {
	return c.sendFile(ctx, "sendDocument", "document", chatID, document, other)
}

// SendSticker sends a static, animated or video sticker.
func (c *Client) SendSticker(ctx context.Context, chatID int64, sticker interface{}, other tgbot.Params) (*Message, error) {
	return c.sendFile(ctx, "sendSticker", "sticker", chatID, sticker, other)
}

func (c *Client) sendFile(ctx context.Context, method, field string, chatID int64, file interface{}, other tgbot.Params) (*Message, error) {
	return asSent(c.Call(ctx, method, with(tgbot.Params{"chat_id": chatID, field: file}, other)))
}

// SendDice sends an animated emoji with a random value. The emoji defaults
// to a die.
func (c *Client) SendDice(ctx context.Context, chatID int64, other tgbot.Params) (*Message, error) {
	return asSent(c.Call(ctx, "sendDice", with(tgbot.Params{"chat_id": chatID}, other)))
}

func (c *Client) SendLocation(ctx context.Context, chatID int64, latitude, longitude float64, other tgbot.Params) (*Message, error) {
	return asSent(c.Call(ctx, "sendLocation", with(tgbot.Params{
		"chat_id":   chatID,
		"latitude":  latitude,
		"longitude": longitude,
	}, other)))
}

func (c *Client) SendVenue(ctx context.Context, chatID int64, latitude, longitude float64, title, address string, other tgbot.Params) (*Message, error) {
	return asSent(c.Call(ctx, "sendVenue", with(tgbot.Params{
		"chat_id":   chatID,
		"latitude":  latitude,
		"longitude": longitude,
		"title":     title,
		"address":   address,
	}, other)))
}

func (c *Client) SendContact(ctx context.Context, chatID int64, phoneNumber, firstName string, other tgbot.Params) (*Message, error) {
	return asSent(c.Call(ctx, "sendContact", with(tgbot.Params{
		"chat_id":      chatID,
		"phone_number": phoneNumber,
		"first_name":   firstName,
	}, other)))
}

// SendPoll sends a native poll.
func (c *Client) SendPoll(ctx context.Context, chatID int64, question string, options []string, other tgbot.Params) (*Message, error) {
	return asSent(c.Call(ctx, "sendPoll", with(tgbot.Params{
		"chat_id":  chatID,
		"question": question,
		"options":  options,
	}, other)))
}

// GetChat returns up to date information about chatID.
func (c *Client) GetChat(ctx context.Context, chatID int64) (*Chat, error) {
	res, err := c.Call(ctx, "getChat", tgbot.Params{"chat_id": chatID})
	if err != nil {
		return nil, err
	}
	if res.Chat != nil {
		return res.Chat, nil
	}

	var chat tgbot.Chat
	if err := res.Decode(&chat); err != nil {
		return nil, err
	}
	return c.Chat(&chat), nil
}

// GetChatMember returns the membership of userID in chatID.
func (c *Client) GetChatMember(ctx context.Context, chatID, userID int64) (*ChatMember, error) {
	return c.Chat(&tgbot.Chat{ID: chatID}).GetMember(ctx, userID, nil)
}

// GetMe returns the bot's own user.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	u, err := as[tgbot.User](c.Call(ctx, "getMe", nil))
	if err != nil {
		return nil, err
	}
	return c.User(&u), nil
}
