package hydrate

import (
	"context"

	"github.com/HTYISABUG/tgbot-hydrate/src/tgbot"
)

// User is a user with operations bound to its id. Without a chat there is
// nothing to moderate; see Member for the chat-scoped operations.
type User struct {
	*tgbot.User

	id int64
	c  *Client
}

// User hydrates u. It returns nil for a nil u.
func (c *Client) User(u *tgbot.User) *User {
	if u == nil {
		return nil
	}
	return &User{User: u, id: u.ID, c: c}
}

// GetProfilePhotos returns the user's profile pictures.
func (u *User) GetProfilePhotos(ctx context.Context, other tgbot.Params) (*tgbot.UserProfilePhotos, error) {
	photos, err := as[tgbot.UserProfilePhotos](u.c.bind("getUserProfilePhotos")(ctx, with(tgbot.Params{"user_id": u.id}, other)))
	if err != nil {
		return nil, err
	}
	return &photos, nil
}

// Member is a user in the context of one chat. On top of the User
// operations it carries the moderation operations for that chat.
type Member struct {
	*User

	chat interface{}
}

// Member hydrates u with operations scoped to chat, which is a numeric chat
// id or a "@username" as the chat was addressed. It returns nil for a nil u.
func (c *Client) Member(u *tgbot.User, chat interface{}) *Member {
	user := c.User(u)
	if user == nil {
		return nil
	}
	return &Member{User: user, chat: chat}
}

// ChatID returns the chat the member's operations target, as it was given.
func (m *Member) ChatID() interface{} {
	return m.chat
}

func (m *Member) call(ctx context.Context, method string, explicit, other tgbot.Params) (bool, error) {
	bound := tgbot.Params{"chat_id": m.chat, "user_id": m.id}
	return asBool(m.c.bind(method)(ctx, with(with(bound, explicit), other)))
}

// Ban bans the user from the chat.
func (m *Member) Ban(ctx context.Context, other tgbot.Params) (bool, error) {
	return m.call(ctx, "banChatMember", nil, other)
}

// Unban lifts a ban. Pass only_if_banned in other to avoid removing a user
// who is currently a member.
func (m *Member) Unban(ctx context.Context, other tgbot.Params) (bool, error) {
	return m.call(ctx, "unbanChatMember", nil, other)
}

// Restrict applies permissions to the user in a supergroup.
func (m *Member) Restrict(ctx context.Context, permissions tgbot.ChatPermissions, other tgbot.Params) (bool, error) {
	return m.call(ctx, "restrictChatMember", tgbot.Params{"permissions": permissions}, other)
}

// Promote promotes or demotes the user. The administrator rights go in
// other.
func (m *Member) Promote(ctx context.Context, other tgbot.Params) (bool, error) {
	return m.call(ctx, "promoteChatMember", nil, other)
}

// SetCustomTitle sets the custom title of an administrator promoted by the
// bot.
func (m *Member) SetCustomTitle(ctx context.Context, title string, other tgbot.Params) (bool, error) {
	return m.call(ctx, "setChatAdministratorCustomTitle", tgbot.Params{"custom_title": title}, other)
}

// ChatMember is a chat membership whose user is bound to the chat.
type ChatMember struct {
	*tgbot.ChatMember

	User *Member `json:"-"`
}

// ChatMember hydrates m for chat, a numeric chat id or a "@username". It
// returns nil for a nil m.
func (c *Client) ChatMember(m *tgbot.ChatMember, chat interface{}) *ChatMember {
	if m == nil {
		return nil
	}
	return &ChatMember{ChatMember: m, User: c.Member(m.User, chat)}
}
