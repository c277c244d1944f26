package hydrate

import (
	"context"
	"errors"
	"testing"

	"github.com/HTYISABUG/tgbot-hydrate/src/tgbot"
	api "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageOtherCannotOverrideBound(t *testing.T) {
	c, f := newClient()
	m := c.Message(rawMessage(5, 9))

	_, err := m.EditText(context.Background(), "new", tgbot.Params{
		"chat_id":    int64(1),
		"message_id": 1,
		"text":       "ignored",
		"parse_mode": tgbot.ParseModeMarkdownV2,
	})
	require.NoError(t, err)
	assert.Equal(t, call{"editMessageText", tgbot.Params{
		"chat_id":    int64(5),
		"message_id": 9,
		"text":       "new",
		"parse_mode": tgbot.ParseModeMarkdownV2,
	}}, f.last(t))
}

func TestMessageEditReturnsMessage(t *testing.T) {
	c, f := newClient()
	f.results["editMessageCaption"] = `{"message_id":9,"chat":{"id":5,"type":"group"},"caption":"c"}`

	m, err := c.Message(rawMessage(5, 9)).EditCaption(context.Background(), "c", nil)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "c", m.Caption)
}

func TestMessageEditOps(t *testing.T) {
	c, f := newClient()
	m := c.Message(rawMessage(5, 9))
	ctx := context.Background()
	target := tgbot.Params{"chat_id": int64(5), "message_id": 9}

	markup := api.NewInlineKeyboardMarkup(api.NewInlineKeyboardRow(
		api.NewInlineKeyboardButtonData("Ping", "ping"),
	))
	_, err := m.EditReplyMarkup(ctx, &markup)
	require.NoError(t, err)
	assert.Equal(t, "editMessageReplyMarkup", f.last(t).Method)
	assert.Equal(t, &markup, f.last(t).Params["reply_markup"])

	_, err = m.EditReplyMarkup(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, target, f.last(t).Params)

	_, err = m.EditLiveLocation(ctx, 1.5, 2.5, nil)
	require.NoError(t, err)
	assert.Equal(t, "editMessageLiveLocation", f.last(t).Method)
	assert.Equal(t, 1.5, f.last(t).Params["latitude"])

	_, err = m.StopLiveLocation(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, call{"stopMessageLiveLocation", target}, f.last(t))

	media := api.NewInputMediaPhoto(api.FileID("file-id"))
	_, err = m.EditMedia(ctx, media, nil)
	require.NoError(t, err)
	assert.Equal(t, media, f.last(t).Params["media"])
}

func TestMessageForwardAndCopy(t *testing.T) {
	c, f := newClient()
	f.results["forwardMessage"] = `{"message_id":100,"chat":{"id":6,"type":"private"}}`
	f.results["copyMessage"] = `{"message_id":101}`
	m := c.Message(rawMessage(5, 9))

	fwd, err := m.Forward(context.Background(), 6, tgbot.Params{"disable_notification": true})
	require.NoError(t, err)
	assert.Equal(t, 100, fwd.MessageID)
	assert.Equal(t, call{"forwardMessage", tgbot.Params{
		"chat_id":              int64(6),
		"from_chat_id":         int64(5),
		"message_id":           9,
		"disable_notification": true,
	}}, f.last(t))

	id, err := m.Copy(context.Background(), 6, nil)
	require.NoError(t, err)
	assert.Equal(t, 101, id.MessageID)
	assert.Equal(t, "copyMessage", f.last(t).Method)
}

func TestMessageForwardUnexpectedResult(t *testing.T) {
	c, _ := newClient()

	_, err := c.Message(rawMessage(5, 9)).Forward(context.Background(), 6, nil)
	assert.True(t, errors.Is(err, ErrUnexpectedResult))
}

func TestMessagePinBusiness(t *testing.T) {
	c, f := newClient()
	raw := rawMessage(5, 9)
	raw.BusinessConnectionID = "biz"

	_, err := c.Message(raw).Pin(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "biz", f.last(t).Params["business_connection_id"])

	_, err = c.Message(rawMessage(5, 9)).Unpin(context.Background(), nil)
	require.NoError(t, err)
	assert.NotContains(t, f.last(t).Params, "business_connection_id")
}

func TestMessageReact(t *testing.T) {
	c, f := newClient()
	m := c.Message(rawMessage(5, 9))

	_, err := m.React(context.Background(), "👍", nil)
	require.NoError(t, err)
	assert.Equal(t, call{"setMessageReaction", tgbot.Params{
		"chat_id":    int64(5),
		"message_id": 9,
		"reaction":   []tgbot.ReactionType{{Type: tgbot.ReactionEmoji, Emoji: "👍"}},
	}}, f.last(t))
}

func TestMessageReactUnsupported(t *testing.T) {
	c, f := newClient()

	_, err := c.Message(rawMessage(5, 9)).React(context.Background(), 42, nil)
	assert.True(t, errors.Is(err, ErrUnsupportedReaction))
	assert.Empty(t, f.Calls())
}

func TestNormalizeReactions(t *testing.T) {
	custom := tgbot.ReactionType{Type: tgbot.ReactionCustomEmoji, CustomEmojiID: "555"}

	tests := []struct {
		name string
		in   interface{}
		want []tgbot.ReactionType
	}{
		{"nil", nil, []tgbot.ReactionType{}},
		{"string", "🔥", []tgbot.ReactionType{{Type: tgbot.ReactionEmoji, Emoji: "🔥"}}},
		{"reaction", custom, []tgbot.ReactionType{custom}},
		{"pointer", &custom, []tgbot.ReactionType{custom}},
		{"strings", []string{"a", "b"}, []tgbot.ReactionType{
			{Type: tgbot.ReactionEmoji, Emoji: "a"},
			{Type: tgbot.ReactionEmoji, Emoji: "b"},
		}},
		{"reactions", []tgbot.ReactionType{custom}, []tgbot.ReactionType{custom}},
		{"reaction pointers", []*tgbot.ReactionType{&custom}, []tgbot.ReactionType{custom}},
		{"mixed", []interface{}{"a", custom}, []tgbot.ReactionType{
			{Type: tgbot.ReactionEmoji, Emoji: "a"},
			custom,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeReactions(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := NormalizeReactions([]interface{}{"a", 1})
	assert.True(t, errors.Is(err, ErrUnsupportedReaction))

	_, err = NormalizeReactions([]*tgbot.ReactionType{&custom, nil})
	assert.True(t, errors.Is(err, ErrUnsupportedReaction))
}

func TestMessageCustomEmojiStickers(t *testing.T) {
	c, f := newClient()
	f.results["getCustomEmojiStickers"] = `[{"file_id":"s1","custom_emoji_id":"e1"}]`

	raw := rawMessage(5, 9)
	raw.Entities = []tgbot.MessageEntity{
		{Type: "bold"},
		{Type: tgbot.EntityCustomEmoji, CustomEmojiID: "e1"},
	}

	stickers, err := c.Message(raw).CustomEmojiStickers(context.Background())
	require.NoError(t, err)
	require.Len(t, stickers, 1)
	assert.Equal(t, "s1", stickers[0].FileID)
	assert.Equal(t, call{"getCustomEmojiStickers", tgbot.Params{"custom_emoji_ids": []string{"e1"}}}, f.last(t))
}

func TestMessageCustomEmojiCaptionFallback(t *testing.T) {
	c, _ := newClient()

	raw := rawMessage(5, 9)
	raw.CaptionEntities = []tgbot.MessageEntity{{Type: tgbot.EntityCustomEmoji, CustomEmojiID: "c1"}}
	assert.Equal(t, []string{"c1"}, c.Message(raw).CustomEmojiIDs())

	raw.Entities = []tgbot.MessageEntity{{Type: "italic"}}
	assert.Empty(t, c.Message(raw).CustomEmojiIDs())
}

func TestMessageCustomEmojiNoneSkipsCall(t *testing.T) {
	c, f := newClient()

	for _, entities := range [][]tgbot.MessageEntity{nil, {}, {{Type: "bold"}}} {
		raw := rawMessage(5, 9)
		raw.Entities = entities

		stickers, err := c.Message(raw).CustomEmojiStickers(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, stickers)
		assert.Empty(t, stickers)
	}
	assert.Empty(t, f.Calls())
}

func TestChatOps(t *testing.T) {
	c, f := newClient()
	chat := c.Chat(&tgbot.Chat{ID: -42, Type: tgbot.ChatTypeSupergroup})
	ctx := context.Background()

	tests := []struct {
		name   string
		do     func() error
		method string
		params tgbot.Params
	}{
		{"set title", func() error { _, err := chat.SetTitle(ctx, "t", nil); return err }, "setChatTitle", tgbot.Params{"title": "t"}},
		{"set description", func() error { _, err := chat.SetDescription(ctx, "d", nil); return err }, "setChatDescription", tgbot.Params{"description": "d"}},
		{"delete photo", func() error { _, err := chat.DeletePhoto(ctx, nil); return err }, "deleteChatPhoto", tgbot.Params{}},
		{"unpin all", func() error { _, err := chat.UnpinAllMessages(ctx, nil); return err }, "unpinAllChatMessages", tgbot.Params{}},
		{"sticker set", func() error { _, err := chat.SetStickerSet(ctx, "pack", nil); return err }, "setChatStickerSet", tgbot.Params{"sticker_set_name": "pack"}},
		{"delete sticker set", func() error { _, err := chat.DeleteStickerSet(ctx, nil); return err }, "deleteChatStickerSet", tgbot.Params{}},
		{"close topic", func() error { _, err := chat.CloseForumTopic(ctx, 3, nil); return err }, "closeForumTopic", tgbot.Params{"message_thread_id": 3}},
		{"reopen topic", func() error { _, err := chat.ReopenForumTopic(ctx, 3, nil); return err }, "reopenForumTopic", tgbot.Params{"message_thread_id": 3}},
		{"edit topic", func() error { _, err := chat.EditForumTopic(ctx, 3, tgbot.Params{"name": "n"}); return err }, "editForumTopic", tgbot.Params{"message_thread_id": 3, "name": "n"}},
		{"delete topic", func() error { _, err := chat.DeleteForumTopic(ctx, 3, nil); return err }, "deleteForumTopic", tgbot.Params{"message_thread_id": 3}},
		{"unpin topic", func() error { _, err := chat.UnpinAllForumTopicMessages(ctx, 3, nil); return err }, "unpinAllForumTopicMessages", tgbot.Params{"message_thread_id": 3}},
		{"edit general", func() error { _, err := chat.EditGeneralForumTopic(ctx, "g", nil); return err }, "editGeneralForumTopic", tgbot.Params{"name": "g"}},
		{"close general", func() error { _, err := chat.CloseGeneralForumTopic(ctx, nil); return err }, "closeGeneralForumTopic", tgbot.Params{}},
		{"reopen general", func() error { _, err := chat.ReopenGeneralForumTopic(ctx, nil); return err }, "reopenGeneralForumTopic", tgbot.Params{}},
		{"hide general", func() error { _, err := chat.HideGeneralForumTopic(ctx, nil); return err }, "hideGeneralForumTopic", tgbot.Params{}},
		{"unhide general", func() error { _, err := chat.UnhideGeneralForumTopic(ctx, nil); return err }, "unhideGeneralForumTopic", tgbot.Params{}},
		{"set menu button", func() error { _, err := chat.SetMenuButton(ctx, nil); return err }, "setChatMenuButton", tgbot.Params{}},
		{"ban sender chat", func() error { _, err := chat.BanSenderChat(ctx, -7, nil); return err }, "banChatSenderChat", tgbot.Params{"sender_chat_id": int64(-7)}},
		{"unban sender chat", func() error { _, err := chat.UnbanSenderChat(ctx, -7, nil); return err }, "unbanChatSenderChat", tgbot.Params{"sender_chat_id": int64(-7)}},
		{"ban member", func() error { _, err := chat.BanMember(ctx, 7, nil); return err }, "banChatMember", tgbot.Params{"user_id": int64(7)}},
		{"unban member", func() error { _, err := chat.UnbanMember(ctx, 7, nil); return err }, "unbanChatMember", tgbot.Params{"user_id": int64(7)}},
		{"permissions", func() error { _, err := chat.SetPermissions(ctx, tgbot.ChatPermissions{}, nil); return err }, "setChatPermissions", tgbot.Params{"permissions": tgbot.ChatPermissions{}}},
		{"leave", func() error { _, err := chat.Leave(ctx, nil); return err }, "leaveChat", tgbot.Params{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.do())

			want := tt.params.Clone()
			want["chat_id"] = int64(-42)
			assert.Equal(t, call{tt.method, want}, f.last(t))
		})
	}
}

func TestChatTypedResults(t *testing.T) {
	c, f := newClient()
	f.results["getChatMemberCount"] = `17`
	f.results["exportChatInviteLink"] = `"https://t.me/+x"`
	f.results["createChatInviteLink"] = `{"invite_link":"https://t.me/+y","creates_join_request":true}`
	f.results["createForumTopic"] = `{"message_thread_id":4,"name":"n","icon_color":1}`
	f.results["getChatMenuButton"] = `{"type":"commands"}`
	f.results["getChatAdministrators"] = `[
		{"status":"creator","user":{"id":1,"first_name":"A"}},
		{"status":"administrator","user":{"id":2,"first_name":"B"}}
	]`

	chat := c.Chat(&tgbot.Chat{ID: -42, Type: tgbot.ChatTypeSupergroup})
	ctx := context.Background()

	n, err := chat.GetMemberCount(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 17, n)

	link, err := chat.ExportInviteLink(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://t.me/+x", link)

	invite, err := chat.CreateInviteLink(ctx, tgbot.Params{"creates_join_request": true})
	require.NoError(t, err)
	assert.True(t, invite.CreatesJoinRequest)

	topic, err := chat.CreateForumTopic(ctx, "n", nil)
	require.NoError(t, err)
	assert.Equal(t, 4, topic.MessageThreadID)

	button, err := chat.GetMenuButton(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "commands", button.Type)

	admins, err := chat.GetAdministrators(ctx, nil)
	require.NoError(t, err)
	require.Len(t, admins, 2)
	assert.Equal(t, tgbot.MemberCreator, admins[0].Status)
	assert.Equal(t, int64(-42), admins[1].User.ChatID())

	_, err = admins[1].User.Ban(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, call{"banChatMember", tgbot.Params{"chat_id": int64(-42), "user_id": int64(2)}}, f.last(t))
}

func TestChatGetMember(t *testing.T) {
	c, f := newClient()
	f.results["getChatMember"] = `{"status":"administrator","user":{"id":7,"first_name":"Bo"}}`

	m, err := c.GetChatMember(context.Background(), 42, 7)
	require.NoError(t, err)
	assert.Equal(t, call{"getChatMember", tgbot.Params{"chat_id": int64(42), "user_id": int64(7)}}, f.last(t))

	_, err = m.User.SetCustomTitle(context.Background(), "boss", nil)
	require.NoError(t, err)
	assert.Equal(t, call{"setChatAdministratorCustomTitle", tgbot.Params{
		"chat_id":      int64(42),
		"user_id":      int64(7),
		"custom_title": "boss",
	}}, f.last(t))
}

func TestChatSetPhotoUploads(t *testing.T) {
	c, f := newClient()
	photo := tgbot.InputFile{Name: "p.jpg", Bytes: []byte{1, 2, 3}}

	_, err := c.Chat(&tgbot.Chat{ID: 1}).SetPhoto(context.Background(), photo, nil)
	require.NoError(t, err)
	assert.Equal(t, photo, f.last(t).Params["photo"])
}

func TestMemberOps(t *testing.T) {
	c, f := newClient()
	m := c.Member(&tgbot.User{ID: 7}, int64(42))
	ctx := context.Background()
	bound := tgbot.Params{"chat_id": int64(42), "user_id": int64(7)}

	_, err := m.Unban(ctx, tgbot.Params{"only_if_banned": true, "user_id": int64(99)})
	require.NoError(t, err)
	want := bound.Clone()
	want["only_if_banned"] = true
	assert.Equal(t, call{"unbanChatMember", want}, f.last(t))

	perms := tgbot.ChatPermissions{CanSendMessages: true}
	_, err = m.Restrict(ctx, perms, nil)
	require.NoError(t, err)
	want = bound.Clone()
	want["permissions"] = perms
	assert.Equal(t, call{"restrictChatMember", want}, f.last(t))

	assert.Nil(t, c.Member(nil, int64(42)))
}

func TestQueryAnswers(t *testing.T) {
	c, f := newClient()
	ctx := context.Background()

	iq := c.InlineQuery(&tgbot.InlineQuery{ID: "iq"})
	_, err := iq.Answer(ctx, nil, tgbot.Params{"cache_time": 0})
	require.NoError(t, err)
	assert.Equal(t, call{"answerInlineQuery", tgbot.Params{
		"inline_query_id": "iq",
		"results":         []interface{}{},
		"cache_time":      0,
	}}, f.last(t))

	sq := c.ShippingQuery(&tgbot.ShippingQuery{ID: "sq"})
	_, err = sq.Answer(ctx, false, tgbot.Params{"error_message": "no"})
	require.NoError(t, err)
	assert.Equal(t, call{"answerShippingQuery", tgbot.Params{
		"shipping_query_id": "sq",
		"ok":                false,
		"error_message":     "no",
	}}, f.last(t))

	pq := c.PreCheckoutQuery(&tgbot.PreCheckoutQuery{ID: "pq"})
	_, err = pq.Answer(ctx, true, nil)
	require.NoError(t, err)
	assert.Equal(t, call{"answerPreCheckoutQuery", tgbot.Params{"pre_checkout_query_id": "pq", "ok": true}}, f.last(t))
}

func TestChatJoinRequest(t *testing.T) {
	c, f := newClient()
	r := c.ChatJoinRequest(&tgbot.ChatJoinRequest{
		Chat: &tgbot.Chat{ID: -5, Type: tgbot.ChatTypeChannel},
		From: &tgbot.User{ID: 11},
	})

	_, err := r.Approve(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, call{"approveChatJoinRequest", tgbot.Params{"chat_id": int64(-5), "user_id": int64(11)}}, f.last(t))

	_, err = r.Decline(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "declineChatJoinRequest", f.last(t).Method)

	assert.Equal(t, int64(-5), r.From.ChatID())
	assert.Equal(t, int64(-5), r.Chat.ID)
}

func TestConstructorsNil(t *testing.T) {
	c, _ := newClient()

	assert.Nil(t, c.Message(nil))
	assert.Nil(t, c.InlineMessage(nil))
	assert.Nil(t, c.Chat(nil))
	assert.Nil(t, c.User(nil))
	assert.Nil(t, c.ChatMember(nil, int64(1)))
	assert.Nil(t, c.CallbackQuery(nil))
	assert.Nil(t, c.InlineQuery(nil))
	assert.Nil(t, c.ChosenInlineResult(nil))
	assert.Nil(t, c.ShippingQuery(nil))
	assert.Nil(t, c.PreCheckoutQuery(nil))
	assert.Nil(t, c.ChatJoinRequest(nil))
}

func TestSendHelpers(t *testing.T) {
	c, f := newClient()
	sent := `{"message_id":1,"chat":{"id":5,"type":"private"}}`
	for _, m := range []string{"sendMessage", "sendPhoto", "sendDocument", "sendSticker", "sendDice", "sendLocation", "sendVenue", "sendContact", "sendPoll"} {
		f.results[m] = sent
	}
	f.results["getMe"] = `{"id":99,"is_bot":true,"first_name":"bot","username":"hydrate_bot"}`
	ctx := context.Background()

	_, err := c.SendMessage(ctx, 5, "hi", tgbot.Params{"chat_id": int64(6)})
	require.NoError(t, err)
	assert.Equal(t, call{"sendMessage", tgbot.Params{"chat_id": int64(5), "text": "hi"}}, f.last(t))

	_, err = c.SendPhoto(ctx, 5, "file-id", nil)
	require.NoError(t, err)
	assert.Equal(t, call{"sendPhoto", tgbot.Params{"chat_id": int64(5), "photo": "file-id"}}, f.last(t))

	_, err = c.SendDocument(ctx, 5, tgbot.InputFile{Name: "a.txt", Bytes: []byte("a")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "sendDocument", f.last(t).Method)

	_, err = c.SendSticker(ctx, 5, "sticker-id", nil)
	require.NoError(t, err)

	_, err = c.SendDice(ctx, 5, tgbot.Params{"emoji": "🎯"})
	require.NoError(t, err)
	assert.Equal(t, "🎯", f.last(t).Params["emoji"])

	_, err = c.SendLocation(ctx, 5, 1, 2, nil)
	require.NoError(t, err)

	_, err = c.SendVenue(ctx, 5, 1, 2, "t", "a", nil)
	require.NoError(t, err)
	assert.Equal(t, "a", f.last(t).Params["address"])

	_, err = c.SendContact(ctx, 5, "+1", "Ann", nil)
	require.NoError(t, err)

	msg, err := c.SendPoll(ctx, 5, "q?", []string{"y", "n"}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), msg.ChatID())

	me, err := c.GetMe(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hydrate_bot", me.Username)
}
