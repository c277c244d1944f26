package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/HTYISABUG/tgbot-hydrate/src/hydrate"
	"github.com/HTYISABUG/tgbot-hydrate/src/tgbot"
	api "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/golang/glog"
	"github.com/google/uuid"
)

const (
	callbackPing  = "ping"
	callbackClose = "close"
)

func (s *Server) route(ctx context.Context, u *hydrate.Update) {
	switch u.Kind() {
	case tgbot.UpdateMessage:
		if u.Message.Text != "" {
			s.commandHandler(ctx, u.Message)
		}
	case tgbot.UpdateCallbackQuery:
		s.callbackHandler(ctx, u.CallbackQuery)
	case tgbot.UpdateInlineQuery:
		s.inlineHandler(ctx, u.InlineQuery)
	case tgbot.UpdateChosenInlineResult:
		glog.Infof("inline result %s chosen for %q", u.ChosenInlineResult.ResultID, u.ChosenInlineResult.Query)
	case tgbot.UpdateShippingQuery:
		s.logError(u.ShippingQuery.Answer(ctx, false, tgbot.Params{
			"error_message": "Shipping is not available.",
		}))
	case tgbot.UpdatePreCheckoutQuery:
		s.logError(u.PreCheckoutQuery.Answer(ctx, true, nil))
	case tgbot.UpdateChatJoinRequest:
		s.joinRequestHandler(ctx, u.ChatJoinRequest)
	}
}

// logError logs the error of a call whose result is of no further interest.
func (s *Server) logError(_ interface{}, err error) {
	if err == nil {
		return
	}

	const notModified = "message is not modified"

	var herr *hydrate.Error
	switch {
	case errors.As(err, &herr) && herr.Code() != 0:
		if !strings.Contains(err.Error(), notModified) {
			glog.Errorf("%v (params: %v)", err, herr.Params)
		}
	default:
		glog.Warning(err)
	}
}

// reply answers msg with MarkdownV2 text.
func (s *Server) reply(ctx context.Context, msg *hydrate.Message, text string, other tgbot.Params) {
	params := tgbot.Params{
		"parse_mode":          tgbot.ParseModeMarkdownV2,
		"reply_to_message_id": msg.MessageID,
	}
	for k, v := range other {
		params[k] = v
	}

	s.logError(s.bot.SendMessage(ctx, msg.ChatID(), text, params))
}

// commandHandler dispatches bot commands.
func (s *Server) commandHandler(ctx context.Context, msg *hydrate.Message) {
	elements := strings.Fields(msg.Text)
	if len(elements) == 0 {
		return
	}
	command := strings.SplitN(elements[0], "@", 2)[0]

	switch command {
	case "/echo":
		s.logError(msg.Copy(ctx, msg.ChatID(), nil))
	case "/pin":
		s.replyTarget(ctx, msg, func(target *hydrate.Message) (bool, error) {
			return target.Pin(ctx, tgbot.Params{"disable_notification": true})
		})
	case "/unpin":
		s.replyTarget(ctx, msg, func(target *hydrate.Message) (bool, error) {
			return target.Unpin(ctx, nil)
		})
	case "/del":
		s.replyTarget(ctx, msg, func(target *hydrate.Message) (bool, error) {
			return target.Delete(ctx)
		})
	case "/react":
		target := s.bot.Message(msg.ReplyToMessage)
		if target == nil {
			target = msg
		}
		emoji := "👍"
		if len(elements) > 1 {
			emoji = elements[1]
		}
		if _, err := target.React(ctx, emoji, nil); err != nil {
			s.logError(nil, err)
			s.reply(ctx, msg, tgbot.EscapeText("That reaction is not available here."), nil)
		}
	case "/emoji":
		s.emojiHandler(ctx, msg)
	case "/admins":
		s.adminsHandler(ctx, msg)
	case "/whoami":
		s.whoamiHandler(ctx, msg)
	case "/menu":
		s.reply(ctx, msg, tgbot.BoldText("Menu"), tgbot.Params{"reply_markup": menuMarkup()})
	}
}

func menuMarkup() tgbot.InlineKeyboardMarkup {
	return api.NewInlineKeyboardMarkup(api.NewInlineKeyboardRow(
		api.NewInlineKeyboardButtonData("Ping", callbackPing),
		api.NewInlineKeyboardButtonData("Close", callbackClose),
	))
}

// replyTarget runs op on the message msg replies to.
func (s *Server) replyTarget(ctx context.Context, msg *hydrate.Message, op func(*hydrate.Message) (bool, error)) {
	target := s.bot.Message(msg.ReplyToMessage)
	if target == nil {
		s.reply(ctx, msg, tgbot.EscapeText("Reply to a message to use this command."), nil)
		return
	}

	if _, err := op(target); err != nil {
		s.logError(nil, err)
		s.reply(ctx, msg, tgbot.EscapeText(fmt.Sprintf("Failed: %v", err)), nil)
	}
}

func (s *Server) emojiHandler(ctx context.Context, msg *hydrate.Message) {
	target := s.bot.Message(msg.ReplyToMessage)
	if target == nil {
		target = msg
	}

	stickers, err := target.CustomEmojiStickers(ctx)
	if err != nil {
		s.logError(nil, err)
		return
	}
	if len(stickers) == 0 {
		s.reply(ctx, msg, tgbot.EscapeText("No custom emoji found."), nil)
		return
	}

	lines := make([]string, 0, len(stickers))
	for _, st := range stickers {
		lines = append(lines, fmt.Sprintf("%s %s", st.Emoji, tgbot.ItalicText(tgbot.EscapeText(st.SetName))))
	}
	s.reply(ctx, msg, strings.Join(lines, "\n"), nil)
}

func (s *Server) adminsHandler(ctx context.Context, msg *hydrate.Message) {
	if msg.Chat == nil || msg.Chat.Type == tgbot.ChatTypePrivate {
		s.reply(ctx, msg, tgbot.EscapeText("This only works in groups."), nil)
		return
	}

	admins, err := msg.Chat.GetAdministrators(ctx, nil)
	if err != nil {
		s.logError(nil, err)
		return
	}

	lines := []string{tgbot.BoldText("Administrators")}
	for _, a := range admins {
		if a.User == nil {
			continue
		}
		line := tgbot.Mention(tgbot.EscapeText(a.User.FirstName), a.User.ID)
		if a.CustomTitle != "" {
			line += " " + tgbot.InlineCode(tgbot.EscapeText(a.CustomTitle))
		}
		lines = append(lines, line)
	}
	s.reply(ctx, msg, strings.Join(lines, "\n"), nil)
}

func (s *Server) whoamiHandler(ctx context.Context, msg *hydrate.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}

	member, err := msg.Chat.GetMember(ctx, msg.From.ID, nil)
	if err != nil {
		s.logError(nil, err)
		return
	}

	s.reply(ctx, msg, fmt.Sprintf("%s is %s",
		tgbot.Mention(tgbot.EscapeText(msg.From.FirstName), msg.From.ID),
		tgbot.InlineCode(member.Status),
	), nil)
}

// callbackHandler handles the buttons of the /menu keyboard.
func (s *Server) callbackHandler(ctx context.Context, q *hydrate.CallbackQuery) {
	var editor *hydrate.Editor
	switch {
	case q.Message != nil:
		editor = &q.Message.Editor
	case q.InlineMessage != nil:
		editor = &q.InlineMessage.Editor
	}

	switch q.Data {
	case callbackPing:
		s.logError(q.Answer(ctx, tgbot.Params{"text": "pong"}))
		if editor != nil {
			markup := menuMarkup()
			s.logError(editor.EditText(ctx, tgbot.EscapeText("Pong at "+time.Now().Format(time.Kitchen)), tgbot.Params{
				"parse_mode":   tgbot.ParseModeMarkdownV2,
				"reply_markup": &markup,
			}))
		}
	case callbackClose:
		s.logError(q.Answer(ctx, nil))
		if editor != nil {
			s.logError(editor.EditReplyMarkup(ctx, nil))
		}
	default:
		s.logError(q.Answer(ctx, tgbot.Params{"text": "Unknown button", "show_alert": true}))
	}
}

// inlineHandler offers the query text back as a single article.
func (s *Server) inlineHandler(ctx context.Context, q *hydrate.InlineQuery) {
	if q.Query == "" {
		s.logError(q.Answer(ctx, nil, nil))
		return
	}

	article := api.NewInlineQueryResultArticleMarkdownV2(uuid.NewString(), "Echo", tgbot.EscapeText(q.Query))
	article.Description = q.Query
	markup := api.NewInlineKeyboardMarkup(api.NewInlineKeyboardRow(
		api.NewInlineKeyboardButtonData("Ping", callbackPing),
	))
	article.ReplyMarkup = &markup

	s.logError(q.Answer(ctx, []interface{}{article}, tgbot.Params{"cache_time": 0}))
}

func (s *Server) joinRequestHandler(ctx context.Context, r *hydrate.ChatJoinRequest) {
	if s.setting.ApproveJoinRequests {
		s.logError(r.Approve(ctx, nil))
		return
	}
	s.logError(r.Decline(ctx, nil))
}
