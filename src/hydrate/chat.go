package hydrate

import (
	"context"

	"github.com/HTYISABUG/tgbot-hydrate/src/tgbot"
)

// Chat is a chat with management operations bound to its id.
type Chat struct {
	*tgbot.Chat

	id int64
	c  *Client
}

// Chat hydrates chat. It returns nil for a nil chat.
func (c *Client) Chat(chat *tgbot.Chat) *Chat {
	if chat == nil {
		return nil
	}
	return &Chat{Chat: chat, id: chat.ID, c: c}
}

func (ch *Chat) call(ctx context.Context, method string, explicit, other tgbot.Params) (*Result, error) {
	return ch.c.bind(method)(ctx, with(with(tgbot.Params{"chat_id": ch.id}, explicit), other))
}

func (ch *Chat) do(ctx context.Context, method string, explicit, other tgbot.Params) (bool, error) {
	return asBool(ch.call(ctx, method, explicit, other))
}

// SetPermissions sets the default permissions of all members.
func (ch *Chat) SetPermissions(ctx context.Context, permissions tgbot.ChatPermissions, other tgbot.Params) (bool, error) {
	return ch.do(ctx, "setChatPermissions", tgbot.Params{"permissions": permissions}, other)
}

// GetMember returns the membership of userID in the chat.
func (ch *Chat) GetMember(ctx context.Context, userID int64, other tgbot.Params) (*ChatMember, error) {
	res, err := ch.call(ctx, "getChatMember", tgbot.Params{"user_id": userID}, other)
	if err != nil {
		return nil, err
	}
	if res.ChatMember != nil {
		return res.ChatMember, nil
	}

	var m tgbot.ChatMember
	if err := res.Decode(&m); err != nil {
		return nil, err
	}
	return ch.c.ChatMember(&m, ch.id), nil
}

// GetMemberCount returns the number of members in the chat.
func (ch *Chat) GetMemberCount(ctx context.Context, other tgbot.Params) (int, error) {
	return as[int](ch.call(ctx, "getChatMemberCount", nil, other))
}

// GetAdministrators returns the administrators of the chat other than bots.
func (ch *Chat) GetAdministrators(ctx context.Context, other tgbot.Params) ([]*ChatMember, error) {
	raw, err := as[[]tgbot.ChatMember](ch.call(ctx, "getChatAdministrators", nil, other))
	if err != nil {
		return nil, err
	}

	admins := make([]*ChatMember, len(raw))
	for i := range raw {
		admins[i] = ch.c.ChatMember(&raw[i], ch.id)
	}
	return admins, nil
}

func (ch *Chat) SetStickerSet(ctx context.Context, stickerSetName string, other tgbot.Params) (bool, error) {
	return ch.do(ctx, "setChatStickerSet", tgbot.Params{"sticker_set_name": stickerSetName}, other)
}

func (ch *Chat) DeleteStickerSet(ctx context.Context, other tgbot.Params) (bool, error) {
	return ch.do(ctx, "deleteChatStickerSet", nil, other)
}

// CreateForumTopic creates a topic in a forum supergroup.
func (ch *Chat) CreateForumTopic(ctx context.Context, name string, other tgbot.Params) (*tgbot.ForumTopic, error) {
	topic, err := as[tgbot.ForumTopic](ch.call(ctx, "createForumTopic", tgbot.Params{"name": name}, other))
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (ch *Chat) EditForumTopic(ctx context.Context, messageThreadID int, other tgbot.Params) (bool, error) {
	return ch.do(ctx, "editForumTopic", tgbot.Params{"message_thread_id": messageThreadID}, other)
}

func (ch *Chat) CloseForumTopic(ctx context.Context, messageThreadID int, other tgbot.Params) (bool, error) {
	return ch.do(ctx, "closeForumTopic", tgbot.Params{"message_thread_id": messageThreadID}, other)
}

func (ch *Chat) ReopenForumTopic(ctx context.Context, messageThreadID int, other tgbot.Params) (bool, error) {
	return ch.do(ctx, "reopenForumTopic", tgbot.Params{"message_thread_id": messageThreadID}, other)
}

func (ch *Chat) DeleteForumTopic(ctx context.Context, messageThreadID int, other tgbot.Params) (bool, error) {
	return ch.do(ctx, "deleteForumTopic", tgbot.Params{"message_thread_id": messageThreadID}, other)
}

func (ch *Chat) UnpinAllForumTopicMessages(ctx context.Context, messageThreadID int, other tgbot.Params) (bool, error) {
	return ch.do(ctx, "unpinAllForumTopicMessages", tgbot.Params{"message_thread_id": messageThreadID}, other)
}

func (ch *Chat) EditGeneralForumTopic(ctx context.Context, name string, other tgbot.Params) (bool, error) {
	return ch.do(ctx, "editGeneralForumTopic", tgbot.Params{"name": name}, other)
}

func (ch *Chat) CloseGeneralForumTopic(ctx context.Context, other tgbot.Params) (bool, error) {
	return ch.do(ctx, "closeGeneralForumTopic", nil, other)
}

func (ch *Chat) ReopenGeneralForumTopic(ctx context.Context, other tgbot.Params) (bool, error) {
	return ch.do(ctx, "reopenGeneralForumTopic", nil, other)
}

func (ch *Chat) HideGeneralForumTopic(ctx context.Context, other tgbot.Params) (bool, error) {
	return ch.do(ctx, "hideGeneralForumTopic", nil, other)
}

func (ch *Chat) UnhideGeneralForumTopic(ctx context.Context, other tgbot.Params) (bool, error) {
	return ch.do(ctx, "unhideGeneralForumTopic", nil, other)
}

// SetMenuButton changes the bot's menu button in a private chat.
func (ch *Chat) SetMenuButton(ctx context.Context, other tgbot.Params) (bool, error) {
	return ch.do(ctx, "setChatMenuButton", nil, other)
}

// GetMenuButton returns the bot's menu button in a private chat.
func (ch *Chat) GetMenuButton(ctx context.Context, other tgbot.Params) (*tgbot.MenuButton, error) {
	button, err := as[tgbot.MenuButton](ch.call(ctx, "getChatMenuButton", nil, other))
	if err != nil {
		return nil, err
	}
	return &button, nil
}

// Leave makes the bot leave the chat.
func (ch *Chat) Leave(ctx context.Context, other tgbot.Params) (bool, error) {
	return ch.do(ctx, "leaveChat", nil, other)
}

// SetPhoto uploads photo as the chat photo.
func (ch *Chat) SetPhoto(ctx context.Context, photo tgbot.InputFile, other tgbot.Params) (bool, error) {
	return ch.do(ctx, "setChatPhoto", tgbot.Params{"photo": photo}, other)
}

func (ch *Chat) DeletePhoto(ctx context.Context, other tgbot.Params) (bool, error) {
	return ch.do(ctx, "deleteChatPhoto", nil, other)
}

func (ch *Chat) SetTitle(ctx context.Context, title string, other tgbot.Params) (bool, error) {
	return ch.do(ctx, "setChatTitle", tgbot.Params{"title": title}, other)
}

func (ch *Chat) SetDescription(ctx context.Context, description string, other tgbot.Params) (bool, error) {
	return ch.do(ctx, "setChatDescription", tgbot.Params{"description": description}, other)
}

func (ch *Chat) UnpinAllMessages(ctx context.Context, other tgbot.Params) (bool, error) {
	return ch.do(ctx, "unpinAllChatMessages", nil, other)
}

func (ch *Chat) RevokeInviteLink(ctx context.Context, inviteLink string, other tgbot.Params) (*tgbot.ChatInviteLink, error) {
	return ch.inviteLink(ctx, "revokeChatInviteLink", tgbot.Params{"invite_link": inviteLink}, other)
}

func (ch *Chat) EditInviteLink(ctx context.Context, inviteLink string, other tgbot.Params) (*tgbot.ChatInviteLink, error) {
	return ch.inviteLink(ctx, "editChatInviteLink", tgbot.Params{"invite_link": inviteLink}, other)
}

func (ch *Chat) CreateInviteLink(ctx context.Context, other tgbot.Params) (*tgbot.ChatInviteLink, error) {
	return ch.inviteLink(ctx, "createChatInviteLink", nil, other)
}

func (ch *Chat) inviteLink(ctx context.Context, method string, explicit, other tgbot.Params) (*tgbot.ChatInviteLink, error) {
	link, err := as[tgbot.ChatInviteLink](ch.call(ctx, method, explicit, other))
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// ExportInviteLink generates a new primary invite link, revoking the old
// one, and returns it.
func (ch *Chat) ExportInviteLink(ctx context.Context, other tgbot.Params) (string, error) {
	return as[string](ch.call(ctx, "exportChatInviteLink", nil, other))
}

// BanSenderChat bans a channel chat from posting in the chat on its behalf.
func (ch *Chat) BanSenderChat(ctx context.Context, senderChatID int64, other tgbot.Params) (bool, error) {
	return ch.do(ctx, "banChatSenderChat", tgbot.Params{"sender_chat_id": senderChatID}, other)
}

func (ch *Chat) UnbanSenderChat(ctx context.Context, senderChatID int64, other tgbot.Params) (bool, error) {
	return ch.do(ctx, "unbanChatSenderChat", tgbot.Params{"sender_chat_id": senderChatID}, other)
}

func (ch *Chat) BanMember(ctx context.Context, userID int64, other tgbot.Params) (bool, error) {
	return ch.do(ctx, "banChatMember", tgbot.Params{"user_id": userID}, other)
}

func (ch *Chat) UnbanMember(ctx context.Context, userID int64, other tgbot.Params) (bool, error) {
	return ch.do(ctx, "unbanChatMember", tgbot.Params{"user_id": userID}, other)
}
