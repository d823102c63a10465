package notifications

import (
	"context"
	"errors"
	"fmt"
	"log"

	"seedround/pkg/apperr"
	"seedround/pkg/sendemail"
)

// Notifier is the narrow surface the domain engine emits events through.
type Notifier interface {
	Notify(ctx context.Context, recipientID int64, notifType, message string) (Notification, error)
}

type NotificationService interface {
	Notifier
	ListNotifications(ctx context.Context, recipientID int64, page, limit int) ([]Notification, int64, error)
	MarkSeen(ctx context.Context, id int64) error
	MarkAllSeen(ctx context.Context, recipientID int64) (int64, error)
}

type notificationService struct {
	repo NotificationRepository
	feed *Feed
	es   sendemail.EmailService // optional; nil disables email delivery
}

func NewNotificationService(repo NotificationRepository, feed *Feed, es sendemail.EmailService) NotificationService {
	return &notificationService{repo: repo, feed: feed, es: es}
}

// Notify stores the notification, then pushes it to the live feed and email
// best-effort. Delivery failures are logged, never returned: the domain
// operation that emitted the event has already committed.
func (s *notificationService) Notify(ctx context.Context, recipientID int64, notifType, message string) (Notification, error) {
	n, err := s.repo.CreateNotification(ctx, recipientID, notifType, message)
	if err != nil {
		if errors.Is(err, ErrRecipientNotFound) {
			return Notification{}, apperr.New(apperr.KindNotFound, "recipient profile not found")
		}
		return Notification{}, apperr.Wrap(apperr.KindInternal, "create notification", err)
	}

	if s.feed != nil {
		if err := s.feed.Push(recipientID, n); err != nil {
			// Not an error: the recipient simply isn't connected.
			log.Printf("notification feed push skipped for profile %d: %v", recipientID, err)
		}
	}

	if s.es != nil {
		if err := s.sendEmail(ctx, n); err != nil {
			log.Printf("notification email failed for profile %d: %v", recipientID, err)
		}
	}

	return n, nil
}

func (s *notificationService) sendEmail(ctx context.Context, n Notification) error {
	email, err := s.repo.GetRecipientEmail(ctx, n.RecipientID)
	if err != nil {
		return err
	}
	subject := "Seedround update"
	html := fmt.Sprintf("<p>%s</p>", n.Message)
	return s.es.SendEmail(subject, email, n.Message, html)
}

func (s *notificationService) ListNotifications(ctx context.Context, recipientID int64, page, limit int) ([]Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit
	return s.repo.ListByRecipient(ctx, recipientID, limit, offset)
}

func (s *notificationService) MarkSeen(ctx context.Context, id int64) error {
	if err := s.repo.MarkSeen(ctx, id); err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			return apperr.New(apperr.KindNotFound, "notification not found")
		}
		return apperr.Wrap(apperr.KindInternal, "mark notification seen", err)
	}
	return nil
}

func (s *notificationService) MarkAllSeen(ctx context.Context, recipientID int64) (int64, error) {
	count, err := s.repo.MarkAllSeen(ctx, recipientID)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindInternal, "mark all notifications seen", err)
	}
	return count, nil
}
