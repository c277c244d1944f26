// Package hydrate equips Telegram entities with operations bound to the
// identifiers they already carry, so that a handler can write
// u.Message.Delete(ctx) instead of re-supplying the chat and message ids.
//
// Entities are hydrated on two paths: inbound updates through
// Client.HydrateUpdate, and results of outbound calls through Client.Call,
// which classifies each result by shape before handing it back.
package hydrate

import (
	"context"
	"encoding/json"

	"github.com/HTYISABUG/tgbot-hydrate/src/tgbot"
	"github.com/golang/glog"
)

// Client wraps a tgbot.Caller so that every call result comes back
// hydrated. It keeps no state besides the caller and is safe for concurrent
// use.
type Client struct {
	caller tgbot.Caller
}

// Wrap returns a Client issuing its calls through caller.
func Wrap(caller tgbot.Caller) *Client {
	return &Client{caller: caller}
}

// ResultKind tags the shape a call result was classified as.
type ResultKind int

const (
	// ResultPlain is a result that matched no entity shape, such as true, a
	// number, an array or an unrecognized object.
	ResultPlain ResultKind = iota
	ResultMessage
	ResultInlineMessage
	ResultChatMember
	ResultChat
)

func (k ResultKind) String() string {
	switch k {
	case ResultMessage:
		return "message"
	case ResultInlineMessage:
		return "inline_message"
	case ResultChatMember:
		return "chat_member"
	case ResultChat:
		return "chat"
	}
	return "plain"
}

// Result is a successful call result. Raw always holds the result as sent by
// the platform; the field matching Kind holds the hydrated entity.
type Result struct {
	Kind ResultKind
	Raw  json.RawMessage

	Message       *Message
	InlineMessage *InlineMessage
	ChatMember    *ChatMember
	Chat          *Chat
}

// Decode unmarshals the raw result into v.
func (r *Result) Decode(v interface{}) error {
	return json.Unmarshal(r.Raw, v)
}

// Call invokes method with params and hydrates the result.
//
// When the call does not succeed, Call returns an *Error carrying the method,
// the params and whatever the transport reported. Failures are never retried.
func (c *Client) Call(ctx context.Context, method string, params tgbot.Params) (*Result, error) {
	resp, err := c.caller.Call(ctx, method, params)
	if err == nil && (resp == nil || !resp.Ok) {
		err = errNotOK
	}
	if err != nil {
		glog.V(1).Infof("%s failed: %v", method, err)
		return nil, &Error{Method: method, Params: params, Response: resp, Err: err}
	}

	return c.classify(params, resp.Result), nil
}

type fields map[string]json.RawMessage

func (f fields) has(keys ...string) bool {
	for _, k := range keys {
		if _, ok := f[k]; !ok {
			return false
		}
	}
	return true
}

// shape is one step of result classification.
type shape struct {
	kind    ResultKind
	match   func(f fields, params tgbot.Params) bool
	hydrate func(c *Client, raw json.RawMessage, params tgbot.Params, res *Result) error
}

// shapes is tested in order and the first match wins:
//
//  1. message_id and chat: a full message.
//  2. inline_message_id: an inline message stub.
//  3. status and user, with a numeric chat_id among the call params: a chat
//     member whose user gets operations scoped to that chat.
//  4. id and a type that is a chat type tag: a chat.
//
// Anything else is passed through as ResultPlain.
var shapes = []shape{
	{
		kind: ResultMessage,
		match: func(f fields, _ tgbot.Params) bool {
			return f.has("message_id", "chat")
		},
		hydrate: func(c *Client, raw json.RawMessage, _ tgbot.Params, res *Result) error {
			var m tgbot.Message
			if err := json.Unmarshal(raw, &m); err != nil {
				return err
			}
			res.Message = c.Message(&m)
			return nil
		},
	},
	{
		kind: ResultInlineMessage,
		match: func(f fields, _ tgbot.Params) bool {
			return f.has("inline_message_id")
		},
		hydrate: func(c *Client, raw json.RawMessage, _ tgbot.Params, res *Result) error {
			var m tgbot.InlineMessage
			if err := json.Unmarshal(raw, &m); err != nil {
				return err
			}
			res.InlineMessage = c.InlineMessage(&m)
			return nil
		},
	},
	{
		kind: ResultChatMember,
		match: func(f fields, params tgbot.Params) bool {
			_, ok := params.ChatRef()
			return ok && f.has("status", "user")
		},
		hydrate: func(c *Client, raw json.RawMessage, params tgbot.Params, res *Result) error {
			var m tgbot.ChatMember
			if err := json.Unmarshal(raw, &m); err != nil {
				return err
			}
			chat, _ := params.ChatRef()
			res.ChatMember = c.ChatMember(&m, chat)
			return nil
		},
	},
	{
		kind: ResultChat,
		match: func(f fields, _ tgbot.Params) bool {
			if !f.has("id", "type") {
				return false
			}
			var t string
			return json.Unmarshal(f["type"], &t) == nil && tgbot.IsChatType(t)
		},
		hydrate: func(c *Client, raw json.RawMessage, _ tgbot.Params, res *Result) error {
			var chat tgbot.Chat
			if err := json.Unmarshal(raw, &chat); err != nil {
				return err
			}
			res.Chat = c.Chat(&chat)
			return nil
		},
	},
}

func (c *Client) classify(params tgbot.Params, raw json.RawMessage) *Result {
	res := &Result{Kind: ResultPlain, Raw: raw}

	var f fields
	if err := json.Unmarshal(raw, &f); err != nil || f == nil {
		return res
	}

	for _, s := range shapes {
		if !s.match(f, params) {
			continue
		}

		if err := s.hydrate(c, raw, params, res); err != nil {
			glog.Warningf("result looks like a %v but does not decode: %v", s.kind, err)
			return &Result{Kind: ResultPlain, Raw: raw}
		}
		res.Kind = s.kind
		return res
	}

	return res
}
