package tgbot

import (
	"context"
	"encoding/json"
	"net/http"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// UpdatesChannel is the channel for getting updates.
type UpdatesChannel <-chan Update

// ListenForWebhook registers a http handler for a webhook.
//
// Requests whose secret token header does not match secret are rejected. An
// empty secret disables the check.
func (bot *TgBot) ListenForWebhook(pattern, secret string, mux *http.ServeMux) UpdatesChannel {
	ch := make(chan Update, bot.Buffer)

	if mux != nil {
		mux.Handle(pattern, WebhookHandler(secret, ch))
	} else {
		http.Handle(pattern, WebhookHandler(secret, ch))
	}

	return ch
}

// WebhookHandler decodes webhook requests into updates and sends them to ch.
func WebhookHandler(secret string, ch chan<- Update) http.Handler {
	writeError := func(w http.ResponseWriter, code int, msg string) {
		errMsg, _ := json.Marshal(map[string]string{"error": msg})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = w.Write(errMsg)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		if secret != "" && r.Header.Get(secretTokenHeader) != secret {
			writeError(w, http.StatusUnauthorized, "invalid secret token")
			return
		}

		var update Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		ch <- update
		w.WriteHeader(http.StatusOK)
	})
}

// SetWebhook asks Telegram to deliver updates to url, signed with secret.
func (bot *TgBot) SetWebhook(ctx context.Context, url, secret string) error {
	_, err := bot.Call(ctx, "setWebhook", Params{
		"url":          url,
		"secret_token": secret,
	})
	return err
}

// DeleteWebhook removes the webhook so updates can be polled again.
func (bot *TgBot) DeleteWebhook(ctx context.Context) error {
	_, err := bot.Call(ctx, "deleteWebhook", nil)
	return err
}
