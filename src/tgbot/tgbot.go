package tgbot

import (
	"context"
	"net/http"

	api "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Response is a response from the Telegram Bot API with the result stored
// raw.
type Response = api.APIResponse

// ResponseParameters are various errors that can be returned in Response.
type ResponseParameters = api.ResponseParameters

// Error is an error containing extra information returned by the Telegram
// API.
type Error = api.Error

// Caller performs Bot API method calls. A call that reaches the platform but
// is rejected returns the decoded Response together with a non-nil error.
type Caller interface {
	Call(ctx context.Context, method string, params Params) (*Response, error)
}

// TgBot allows you to interact with the Telegram Bot API.
type TgBot struct {
	*api.BotAPI
}

// NewTgBot creates a new TgBot instance.
//
// It requires a token, provided by @BotFather on Telegram.
func NewTgBot(token string) (*TgBot, error) {
	bot, err := api.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &TgBot{bot}, nil
}

// NewTgBotWithClient creates a new TgBot instance talking to endpoint through
// client. endpoint is a format string taking the token and the method name,
// like api.APIEndpoint.
func NewTgBotWithClient(token, endpoint string, client *http.Client) (*TgBot, error) {
	if endpoint == "" {
		endpoint = api.APIEndpoint
	}

	bot, err := api.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, err
	}
	return &TgBot{bot}, nil
}

type outcome struct {
	resp *Response
	err  error
}

// Call invokes method with params. The request itself cannot be aborted, so
// a cancelled ctx makes Call return early and the response is discarded.
func (bot *TgBot) Call(ctx context.Context, method string, params Params) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	values, files, err := params.encode()
	if err != nil {
		return nil, err
	}

	done := make(chan outcome, 1)
	go func() {
		var o outcome
		if len(files) > 0 {
			o.resp, o.err = bot.UploadFiles(method, values, files)
		} else {
			o.resp, o.err = bot.MakeRequest(method, values)
		}
		done <- o
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case o := <-done:
		return o.resp, o.err
	}
}
