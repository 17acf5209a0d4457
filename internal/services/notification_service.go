package services

import (
	"context"

	"github.com/joshua-takyi/grooviti/internal/models"
)

type NotificationService struct {
	repo models.NotificationRepo
}

func NewNotificationService(repo models.NotificationRepo) *NotificationService {
	return &NotificationService{repo: repo}
}

func (ns *NotificationService) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	return ns.repo.ListNotifications(ctx)
}

func (ns *NotificationService) Publish(ctx context.Context, title, message string) (*models.Notification, error) {
	return ns.repo.AddNotification(ctx, &models.Notification{Title: title, Message: message})
}
