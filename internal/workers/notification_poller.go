package workers

import (
	"context"
	"sync"
	"time"

	"github.com/homefront-community/homefront/internal/logger"
	"github.com/homefront-community/homefront/models"
)

const defaultPollInterval = time.Minute

type notificationPoller struct {
	fetcher  NotificationFetcher
	onUpdate func(notifications []models.Notification)
	log      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewNotificationPoller creates a poller that fetches notifications on a
// ticker and hands each successful result to onUpdate. The poller is idle
// until Start is called.
func NewNotificationPoller(fetcher NotificationFetcher, onUpdate func([]models.Notification), log *logger.Logger) NotificationPoller {
	return &notificationPoller{fetcher: fetcher, onUpdate: onUpdate, log: log}
}

// Start stops any previously running poll loop, then launches a background
// goroutine that fetches notifications immediately and again every interval.
// If interval is zero or negative it defaults to one minute. The goroutine
// exits when ctx is cancelled or Stop is called.
func (p *notificationPoller) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}

	p.Stop()

	p.mu.Lock()
	pollCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		p.poll(pollCtx)
		for {
			select {
			case <-pollCtx.Done():
				return
			case <-t.C:
				p.poll(pollCtx)
			}
		}
	}()
}

// Stop cancels the poll loop's context and blocks until the goroutine has
// fully exited. Safe to call when the poller is not running.
func (p *notificationPoller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}

func (p *notificationPoller) poll(ctx context.Context) {
	notifications, err := p.fetcher.Notifications(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.log.Warn().Err(err).Msg("notification poll failed")
		}
		return
	}

	p.log.Debug().Int("count", len(notifications)).Int("unread", models.UnreadCount(notifications)).Msg("notifications polled")
	p.onUpdate(notifications)
}
