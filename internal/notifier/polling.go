package notifier

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	pollTimeout = 30 * time.Second
	retryDelay  = 5 * time.Second
)

// CommandHandler answers a chat command. An empty reply sends nothing.
type CommandHandler func(ctx context.Context, command string) string

type getUpdatesRequest struct {
	Offset         int      `json:"offset"`
	Timeout        int      `json:"timeout"`
	AllowedUpdates []string `json:"allowed_updates"`
}

type getUpdatesResponse struct {
	OK     bool `json:"ok"`
	Result []struct {
		UpdateID int `json:"update_id"`
		Message  *struct {
			Text string `json:"text"`
			Chat struct {
				ID int64 `json:"id"`
			} `json:"chat"`
		} `json:"message"`
	} `json:"result"`
}

// StartPolling long-polls for chat commands until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	offset := 0
	for ctx.Err() == nil {
		next, err := t.poll(ctx, offset, handler)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			log.Warn().Err(err).Dur("retry_in", retryDelay).Msg("telegram polling failed")
			select {
			case <-ctx.Done():
			case <-time.After(retryDelay):
			}
			continue
		}
		offset = next
	}
	log.Info().Msg("telegram polling stopped")
}

// poll handles one batch of updates and returns the offset of the next one.
func (t *TelegramNotifier) poll(ctx context.Context, offset int, handler CommandHandler) (int, error) {
	var resp getUpdatesResponse
	req := getUpdatesRequest{Offset: offset, Timeout: int(pollTimeout.Seconds()), AllowedUpdates: []string{"message"}}
	if err := t.call(ctx, "getUpdates", req, &resp); err != nil {
		return offset, err
	}

	for _, u := range resp.Result {
		offset = u.UpdateID + 1
		if u.Message == nil {
			continue
		}
		text := strings.TrimSpace(u.Message.Text)
		if !strings.HasPrefix(text, "/") {
			continue
		}
		log.Info().Str("command", text).Int64("chat", u.Message.Chat.ID).Msg("received command")
		if reply := handler(ctx, text); reply != "" {
			if err := t.Send(ctx, reply); err != nil {
				log.Error().Err(err).Msg("send reply")
			}
		}
	}
	return offset, nil
}
