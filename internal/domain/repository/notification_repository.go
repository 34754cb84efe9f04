package repository

import (
	"context"

	"campusmarket/internal/domain/entity"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	// ListByUserID returns newest first.
	ListByUserID(ctx context.Context, userID string) ([]*entity.Notification, error)
	MarkAsRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
