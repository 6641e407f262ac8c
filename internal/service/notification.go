package service

import (
	"context"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
)

// NotificationService is a user's in-app inbox.
type NotificationService interface {
	List(ctx context.Context, userID string, unreadOnly bool, limit, offset int) (*ListResult[model.Notification], error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

type notificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService constructs a new NotificationService.
func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) List(ctx context.Context, userID string, unreadOnly bool, limit, offset int) (*ListResult[model.Notification], error) {
	if userID == "" {
		return nil, ErrIDRequired
	}
	res, err := s.repo.List(ctx, userID, unreadOnly, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return listResult(res), nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, id string) error {
	if userID == "" || id == "" {
		return ErrIDRequired
	}
	return notFound(s.repo.MarkRead(ctx, id, userID))
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, ErrIDRequired
	}
	return s.repo.MarkAllRead(ctx, userID)
}
