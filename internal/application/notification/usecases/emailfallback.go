package usecases

import (
	"context"
	"fmt"
	"sync"

	"github.com/ticketdesk/ticketdesk/internal/domain/notification"
	vo "github.com/ticketdesk/ticketdesk/internal/domain/notification/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/domain/user"
	"github.com/ticketdesk/ticketdesk/internal/shared/goroutine"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

const (
	DefaultEmailWorkers   = 4
	DefaultEmailQueueSize = 256
)

// EmailLimits bounds concurrent SMTP sends. Zero values use the defaults.
type EmailLimits struct {
	Workers   int
	QueueSize int
}

type emailJob struct {
	ctx context.Context
	n   *notification.Notification
}

// EmailFallback mails a copy of selected notification types to the recipient.
// Sends run on a fixed worker pool fed by a bounded queue; jobs that do not
// fit in the queue are dropped.
type EmailFallback struct {
	mailer   Mailer
	renderer HTMLRenderer
	userRepo user.Repository
	types    map[vo.NotificationType]struct{}
	logger   logger.Interface

	jobs   chan emailJob
	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewEmailFallback creates the fallback and starts its workers. Call Close to
// stop them.
func NewEmailFallback(
	mailer Mailer,
	renderer HTMLRenderer,
	userRepo user.Repository,
	types []vo.NotificationType,
	limits EmailLimits,
	logger logger.Interface,
) *EmailFallback {
	set := make(map[vo.NotificationType]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	if limits.Workers <= 0 {
		limits.Workers = DefaultEmailWorkers
	}
	if limits.QueueSize <= 0 {
		limits.QueueSize = DefaultEmailQueueSize
	}

	f := &EmailFallback{
		mailer:   mailer,
		renderer: renderer,
		userRepo: userRepo,
		types:    set,
		logger:   logger,
		jobs:     make(chan emailJob, limits.QueueSize),
	}
	for i := 0; i < limits.Workers; i++ {
		f.wg.Add(1)
		goroutine.SafeGo(logger, "notification-email", f.work)
	}
	return f
}

func (f *EmailFallback) work() {
	defer f.wg.Done()
	for job := range f.jobs {
		goroutine.Safe(f.logger, "notification-email", func() {
			if err := f.Deliver(job.ctx, job.n); err != nil {
				f.logger.Warnw("notification email failed",
					"notification_id", job.n.ID(),
					"user_id", job.n.UserID(),
					"error", err,
				)
			}
		})()
	}
}

// Enqueue schedules an email for n without blocking. It returns false when the
// queue is full or the fallback is closed.
func (f *EmailFallback) Enqueue(ctx context.Context, n *notification.Notification) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return false
	}

	select {
	case f.jobs <- emailJob{ctx: context.WithoutCancel(ctx), n: n}:
		return true
	default:
		f.logger.Warnw("notification email queue full, dropping email",
			"notification_id", n.ID(),
			"user_id", n.UserID(),
		)
		return false
	}
}

// Close stops accepting jobs and waits for queued ones to finish.
func (f *EmailFallback) Close() {
	if f == nil {
		return
	}
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	close(f.jobs)
	f.mu.Unlock()

	f.wg.Wait()
}

func (f *EmailFallback) Applies(t vo.NotificationType) bool {
	if f == nil {
		return false
	}
	_, ok := f.types[t]
	return ok
}

// Deliver looks up the recipient and sends the email.
func (f *EmailFallback) Deliver(ctx context.Context, n *notification.Notification) error {
	recipient, err := f.userRepo.GetByID(ctx, n.UserID())
	if err != nil {
		return fmt.Errorf("failed to load notification recipient: %w", err)
	}
	if recipient == nil || !recipient.IsActive() {
		f.logger.Debugw("skipping notification email for missing or inactive user",
			"user_id", n.UserID(),
		)
		return nil
	}

	htmlBody, err := f.renderer.ToHTMLSanitized(n.Message())
	if err != nil {
		f.logger.Warnw("failed to render notification email, sending plain text only",
			"notification_id", n.ID(),
			"error", err,
		)
		htmlBody = ""
	}

	if err := f.mailer.SendNotificationEmail(recipient.Email(), n.Title(), n.Message(), htmlBody); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}

	f.logger.Infow("notification email sent",
		"notification_id", n.ID(),
		"user_id", n.UserID(),
	)
	return nil
}
