package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	coreEntity "legalease-api/core/entity"
	"legalease-api/core/logger"
	"legalease-api/core/params"
	"legalease-api/modules/notification/entity"
	"legalease-api/modules/notification/repository"
)

type NotificationService struct {
	repo repository.NotificationRepositoryInterface
}

type NotificationServiceInterface interface {
	Notify(ctx context.Context, userID uuid.UUID, title, message, link string)
	GetMyNotifications(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedNotificationEntity, error)
	MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

func NewNotificationService(repo repository.NotificationRepositoryInterface) NotificationServiceInterface {
	return &NotificationService{repo: repo}
}

// Notify records an in-app alert for the user. It is fire-and-forget: a
// failed write is logged and swallowed so notification problems never
// fail the booking operation that triggered them.
func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, title, message, link string) {
	notif := &entity.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    entity.TypeAppointment,
		Data:    entity.JSONB{"link": link},
		IsRead:  false,
		BaseEntity: coreEntity.BaseEntity{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	if err := s.repo.Create(ctx, notif); err != nil {
		logger.Warn("NotificationService:Notify", "user_id", userID.String(), "error", err)
	}
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	return s.repo.GetByUserID(ctx, userID, queryParams)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) error {
	return s.repo.MarkAsRead(ctx, userID, ids)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}
