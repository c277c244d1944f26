package tgbot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "123:abc"

// newTestBot starts a fake Bot API. handle gets every method except getMe,
// which NewTgBotWithClient needs to succeed.
func newTestBot(t *testing.T, handle func(w http.ResponseWriter, r *http.Request, method string)) *TgBot {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		if method == "getMe" {
			fmt.Fprint(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"bot","username":"test_bot"}}`)
			return
		}
		handle(w, r, method)
	}))
	t.Cleanup(srv.Close)

	bot, err := NewTgBotWithClient(testToken, srv.URL+"/bot%s/%s", srv.Client())
	require.NoError(t, err)
	return bot
}

func TestCall(t *testing.T) {
	bot := newTestBot(t, func(w http.ResponseWriter, r *http.Request, method string) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "sendMessage", method)
		assert.Equal(t, "5", r.PostForm.Get("chat_id"))
		assert.Equal(t, "hi", r.PostForm.Get("text"))
		assert.Equal(t, `{"inline_keyboard":[]}`, r.PostForm.Get("reply_markup"))

		fmt.Fprint(w, `{"ok":true,"result":{"message_id":3,"date":1,"chat":{"id":5,"type":"private"}}}`)
	})
	assert.Equal(t, "test_bot", bot.Self.UserName)

	resp, err := bot.Call(context.Background(), "sendMessage", Params{
		"chat_id":      int64(5),
		"text":         "hi",
		"reply_markup": InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{}},
	})
	require.NoError(t, err)
	assert.True(t, resp.Ok)
	assert.JSONEq(t, `{"message_id":3,"date":1,"chat":{"id":5,"type":"private"}}`, string(resp.Result))
}

func TestCallRejected(t *testing.T) {
	bot := newTestBot(t, func(w http.ResponseWriter, r *http.Request, method string) {
		fmt.Fprint(w, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`)
	})

	resp, err := bot.Call(context.Background(), "getChat", Params{"chat_id": int64(1)})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.False(t, resp.Ok)
	assert.Equal(t, 400, resp.ErrorCode)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Bad Request: chat not found", apiErr.Message)
}

func TestCallUploadsFiles(t *testing.T) {
	bot := newTestBot(t, func(w http.ResponseWriter, r *http.Request, method string) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "setChatPhoto", method)
		assert.Equal(t, "7", r.FormValue("chat_id"))

		f, header, err := r.FormFile("photo")
		require.NoError(t, err)
		defer f.Close()
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, "p.jpg", header.Filename)
		assert.Equal(t, "jpeg", string(data))

		fmt.Fprint(w, `{"ok":true,"result":true}`)
	})

	resp, err := bot.Call(context.Background(), "setChatPhoto", Params{
		"chat_id": int64(7),
		"photo":   InputFile{Name: "p.jpg", Bytes: []byte("jpeg")},
	})
	require.NoError(t, err)
	assert.Equal(t, "true", string(resp.Result))
}

func TestCallCancelled(t *testing.T) {
	bot := newTestBot(t, func(w http.ResponseWriter, r *http.Request, method string) {
		t.Errorf("unexpected call to %s", method)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := bot.Call(ctx, "sendMessage", nil)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestCallDeadline(t *testing.T) {
	release := make(chan struct{})
	bot := newTestBot(t, func(w http.ResponseWriter, r *http.Request, method string) {
		<-release
		fmt.Fprint(w, `{"ok":true,"result":true}`)
	})
	// Runs before the server closes.
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := bot.Call(ctx, "deleteMessage", Params{"chat_id": int64(1), "message_id": 1})
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestPollUpdates(t *testing.T) {
	offsets := make(chan string, 10)
	bot := newTestBot(t, func(w http.ResponseWriter, r *http.Request, method string) {
		assert.NoError(t, r.ParseForm())
		offset := r.PostForm.Get("offset")
		select {
		case offsets <- offset:
		default:
		}

		if offset == "0" {
			fmt.Fprint(w, `{"ok":true,"result":[
				{"update_id":41,"message":{"message_id":1,"date":1,"chat":{"id":5,"type":"private"}}},
				{"update_id":42,"inline_query":{"id":"q","from":{"id":2,"first_name":"B"},"query":"","offset":""}}
			]}`)
			return
		}
		fmt.Fprint(w, `{"ok":true,"result":[]}`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := bot.PollUpdates(ctx, 0)

	u := <-updates
	assert.Equal(t, 41, u.UpdateID)
	assert.Equal(t, UpdateMessage, u.Kind())

	u = <-updates
	assert.Equal(t, 42, u.UpdateID)
	assert.Equal(t, UpdateInlineQuery, u.Kind())

	assert.Equal(t, "0", <-offsets)
	assert.Equal(t, "43", <-offsets)

	cancel()
	for range updates {
	}
}

func TestFetchUpdatesSkipsUndecodable(t *testing.T) {
	bot := newTestBot(t, func(w http.ResponseWriter, r *http.Request, method string) {
		fmt.Fprint(w, `{"ok":true,"result":[
			{"update_id":41,"message":{"message_id":1,"date":1,"chat":{"id":5,"type":"private"}}},
			{"update_id":42,"message":"oops"}
		]}`)
	})

	updates, next, err := bot.FetchUpdates(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, 41, updates[0].UpdateID)
	assert.Equal(t, 43, next)
}

func TestPollUpdatesSkipsUndecodable(t *testing.T) {
	offsets := make(chan string, 10)
	bot := newTestBot(t, func(w http.ResponseWriter, r *http.Request, method string) {
		assert.NoError(t, r.ParseForm())
		offset := r.PostForm.Get("offset")
		select {
		case offsets <- offset:
		default:
		}

		if offset == "0" {
			fmt.Fprint(w, `{"ok":true,"result":[
				{"update_id":41,"message":"oops"},
				{"update_id":42,"message":{"message_id":1,"date":1,"chat":{"id":5,"type":"private"}}},
				{"update_id":43,"edited_message":7}
			]}`)
			return
		}
		fmt.Fprint(w, `{"ok":true,"result":[]}`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := bot.PollUpdates(ctx, 0)

	u := <-updates
	assert.Equal(t, 42, u.UpdateID)

	assert.Equal(t, "0", <-offsets)
	assert.Equal(t, "44", <-offsets)

	cancel()
	for range updates {
	}
}

func TestPollUpdatesConfirmsOnStop(t *testing.T) {
	release := make(chan struct{})
	acks := make(chan string, 1)
	bot := newTestBot(t, func(w http.ResponseWriter, r *http.Request, method string) {
		assert.NoError(t, r.ParseForm())
		offset := r.PostForm.Get("offset")

		switch {
		case r.PostForm.Get("limit") == "1":
			acks <- offset
			fmt.Fprint(w, `{"ok":true,"result":[]}`)
		case offset == "0":
			fmt.Fprint(w, `{"ok":true,"result":[
				{"update_id":41,"message":{"message_id":1,"date":1,"chat":{"id":5,"type":"private"}}}
			]}`)
		default:
			<-release
			fmt.Fprint(w, `{"ok":true,"result":[]}`)
		}
	})
	// Runs before the server closes.
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithCancel(context.Background())
	updates := bot.PollUpdates(ctx, 30)

	u := <-updates
	assert.Equal(t, 41, u.UpdateID)

	cancel()
	for range updates {
	}

	select {
	case offset := <-acks:
		assert.Equal(t, "42", offset)
	default:
		t.Fatal("delivered updates were not confirmed")
	}
}
