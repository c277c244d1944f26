package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/HTYISABUG/tgbot-hydrate/src/hydrate"
	"github.com/HTYISABUG/tgbot-hydrate/src/tgbot"
	"github.com/golang/glog"
)

// Server is a demo bot which answers commands through hydrated entities.
type Server struct {
	tg      *tgbot.TgBot
	bot     *hydrate.Client
	webhook *http.Server

	setting Setting
	handle  func(ctx context.Context, u tgbot.Update)
}

// NewServer returns a pointer to a new `Server` object.
func NewServer(setting Setting) (*Server, error) {
	token, err := setting.Token()
	if err != nil {
		return nil, err
	}

	client, err := setting.HTTPClient()
	if err != nil {
		return nil, err
	}

	tg, err := tgbot.NewTgBotWithClient(token, setting.APIEndpoint, client)
	if err != nil {
		return nil, err
	}
	glog.Infof("Authorized on account %s", tg.Self.UserName)

	s := newServer(setting, tg)
	s.tg = tg
	return s, nil
}

func newServer(setting Setting, caller tgbot.Caller) *Server {
	s := &Server{
		bot:     hydrate.Wrap(caller),
		setting: setting,
	}
	s.handle = s.bot.Handle(s.route)
	return s
}

// Run receives updates until ctx is done, handling each one in its own
// goroutine.
func (s *Server) Run(ctx context.Context) error {
	var (
		updates tgbot.UpdatesChannel
		errCh   = make(chan error, 1)
	)

	if s.setting.Webhook() {
		mux := http.NewServeMux()
		updates = s.tg.ListenForWebhook(s.setting.WebhookPath, s.setting.WebhookSecret, mux)
		s.webhook = &http.Server{Addr: s.setting.ListenAddr, Handler: mux}
		defer s.shutdown()

		go func(srv *http.Server) {
			glog.Infoln("Starting webhook server on", s.setting.ListenAddr)
			var err error
			if s.setting.CertFile != "" {
				err = srv.ListenAndServeTLS(s.setting.CertFile, s.setting.KeyFile)
			} else {
				err = srv.ListenAndServe()
			}
			if !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}(s.webhook)

		if err := s.tg.SetWebhook(ctx, s.setting.WebhookURL(), s.setting.WebhookSecret); err != nil {
			return err
		}
	} else {
		if err := s.tg.DeleteWebhook(ctx); err != nil {
			return err
		}
		glog.Infoln("Polling for updates")
		updates = s.tg.PollUpdates(ctx, s.setting.PollTimeout)
	}

	return s.relay(ctx, updates, errCh)
}

// shutdown stops the webhook server.
func (s *Server) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.webhook.Shutdown(ctx); err != nil {
		glog.Warning(err)
	}
}

func (s *Server) relay(ctx context.Context, updates tgbot.UpdatesChannel, errCh <-chan error) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			return err
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go s.handle(ctx, update)
		}
	}
}
