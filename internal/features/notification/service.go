package notification

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"jzf-portal/internal/common/models"
	"jzf-portal/internal/features/document"
)

// ClientUserFinder resolves the portal users attached to a client so
// lifecycle notifications land in the right inboxes.
type ClientUserFinder interface {
	FindByClientID(ctx context.Context, clientID string) ([]models.User, error)
}

type NotificationService interface {
	Publish(ctx context.Context, event document.LifecycleEvent)
	ListForUser(ctx context.Context, userID string, limit int64) ([]Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkAsRead(ctx context.Context, userID, notificationID string) error
	MarkAllAsRead(ctx context.Context, userID string) error
}

type NotificationServiceImpl struct {
	Repo   NotificationRepository
	Users  ClientUserFinder
	Hub    *Hub
	Logger *zap.Logger
}

func NewNotificationService(repo NotificationRepository, users ClientUserFinder, hub *Hub, logger *zap.Logger) NotificationService {
	return &NotificationServiceImpl{Repo: repo, Users: users, Hub: hub, Logger: logger}
}

// Publish records a notification for every user of the event's client and
// pushes it to open websocket sessions. Delivery is best effort; a failed
// insert is logged and never propagated back into the document transition.
func (s *NotificationServiceImpl) Publish(ctx context.Context, event document.LifecycleEvent) {
	message := fmt.Sprintf("O documento %q mudou de status para %q.", event.DocumentName, event.NewStatus)
	link := "/documentos/" + event.DocumentID

	users, err := s.Users.FindByClientID(ctx, event.ClientID)
	if err != nil {
		s.Logger.Warn("failed to resolve client users for notification",
			zap.String("clientId", event.ClientID), zap.Error(err))
		return
	}

	for _, u := range users {
		uid := u.ID
		n := &Notification{
			UserID:    &uid,
			Message:   message,
			Link:      link,
			IsRead:    false,
			CreatedAt: time.Now(),
		}
		if err := s.Repo.Create(ctx, n); err != nil {
			s.Logger.Warn("failed to persist notification",
				zap.String("userId", uid.Hex()), zap.Error(err))
		}
	}

	s.Hub.Broadcast(fiberPayload{
		Type:       "document_update",
		DocumentID: event.DocumentID,
		ClientID:   event.ClientID,
		Message:    message,
		Link:       link,
	})
}

type fiberPayload struct {
	Type       string `json:"type"`
	DocumentID string `json:"documentId"`
	ClientID   string `json:"clientId"`
	Message    string `json:"message"`
	Link       string `json:"link"`
}

func (s *NotificationServiceImpl) ListForUser(ctx context.Context, userID string, limit int64) ([]Notification, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	return s.Repo.ListByUser(ctx, oid, limit)
}

func (s *NotificationServiceImpl) UnreadCount(ctx context.Context, userID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, fmt.Errorf("invalid user id: %w", err)
	}
	return s.Repo.UnreadCount(ctx, oid)
}

func (s *NotificationServiceImpl) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}
	nid, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return fmt.Errorf("invalid notification id: %w", err)
	}
	return s.Repo.MarkAsRead(ctx, nid, uid)
}

func (s *NotificationServiceImpl) MarkAllAsRead(ctx context.Context, userID string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}
	return s.Repo.MarkAllAsRead(ctx, uid)
}
