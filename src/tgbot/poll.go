package tgbot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang/glog"
)

const (
	pollBackoff = 5 * time.Second
	ackTimeout  = 2 * time.Second
)

// FetchUpdates fetches pending updates starting at offset, waiting up to
// timeout seconds for one to arrive. It also returns the offset that
// confirms every fetched update. An update that cannot be decoded is logged
// and skipped.
func (bot *TgBot) FetchUpdates(ctx context.Context, offset, timeout int) ([]Update, int, error) {
	resp, err := bot.Call(ctx, "getUpdates", Params{
		"offset":  offset,
		"timeout": timeout,
	})
	if err != nil {
		return nil, offset, err
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(resp.Result, &raw); err != nil {
		return nil, offset, fmt.Errorf("decode updates: %w", err)
	}

	next := offset
	updates := make([]Update, 0, len(raw))
	for _, r := range raw {
		var id struct {
			UpdateID int `json:"update_id"`
		}
		if err := json.Unmarshal(r, &id); err == nil && id.UpdateID >= next {
			next = id.UpdateID + 1
		}

		var u Update
		if err := json.Unmarshal(r, &u); err != nil {
			glog.Warningf("Skipping update %d: %v", id.UpdateID, err)
			continue
		}
		updates = append(updates, u)
	}
	return updates, next, nil
}

// PollUpdates long-polls for updates until ctx is done. The returned channel
// is closed when polling stops, after the delivered updates are confirmed.
func (bot *TgBot) PollUpdates(ctx context.Context, timeout int) UpdatesChannel {
	ch := make(chan Update, bot.Buffer)

	go func() {
		defer close(ch)

		// acked is the offset Telegram last confirmed updates with.
		offset, acked := 0, 0
		defer func() {
			if offset > acked {
				bot.ackUpdates(offset)
			}
		}()

		for {
			updates, next, err := bot.FetchUpdates(ctx, offset, timeout)
			if err != nil {
				if ctx.Err() != nil {
					return
				}

				glog.Warningf("getUpdates failed, retrying in %v: %v", pollBackoff, err)
				select {
				case <-time.After(pollBackoff):
				case <-ctx.Done():
					return
				}
				continue
			}
			acked = offset

			for _, u := range updates {
				select {
				case ch <- u:
				case <-ctx.Done():
					return
				}

				if u.UpdateID >= offset {
					offset = u.UpdateID + 1
				}
			}
			if next > offset {
				offset = next
			}
		}
	}()

	return ch
}

// ackUpdates confirms every update below offset so it is not delivered
// again.
func (bot *TgBot) ackUpdates(offset int) {
	ctx, cancel := context.WithTimeout(context.Background(), ackTimeout)
	defer cancel()

	_, err := bot.Call(ctx, "getUpdates", Params{
		"offset":  offset,
		"timeout": 0,
		"limit":   1,
	})
	if err != nil {
		glog.Warningf("Failed to confirm updates below %d: %v", offset, err)
	}
}
