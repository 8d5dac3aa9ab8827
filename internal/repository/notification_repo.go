package repository

import (
	"honesty-store-backend/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *model.Notification) error
	FindForAudiences(audiences []model.Audience, category string) ([]model.Notification, error)
	FindAll() ([]model.Notification, error)
}

type notificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db}
}

func (r *notificationRepo) Create(notification *model.Notification) error {
	return r.db.Create(notification).Error
}

// FindForAudiences returns notices for any of the audiences, newest first.
// A non-empty category keeps store-wide notices (NULL category) and those
// targeting the given category.
func (r *notificationRepo) FindForAudiences(audiences []model.Audience, category string) ([]model.Notification, error) {
	var notifications []model.Notification
	q := r.db.Where("audience IN ?", audiences)
	if category != "" {
		q = q.Where("category IS NULL OR category = ?", category)
	}
	err := q.Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepo) FindAll() ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}
