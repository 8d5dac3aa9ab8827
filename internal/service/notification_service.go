package service

import (
	"fmt"

	"honesty-store-backend/internal/model"
	"honesty-store-backend/internal/repository"
	"honesty-store-backend/pkg/validator"
)

type NotificationService interface {
	CreateNotification(req *model.Notification, creatorID string) error
	GetNotificationsForRole(roleCode, category string) ([]model.Notification, error)
	GetAllNotifications() ([]model.Notification, error)
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(nRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: nRepo}
}

func (s *notificationService) CreateNotification(req *model.Notification, creatorID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	req.CreatedBy = creatorID
	req.UpdatedBy = creatorID

	return s.notificationRepo.Create(req)
}

// GetNotificationsForRole returns the notices visible to the given role,
// newest first, optionally narrowed to one product category.
func (s *notificationService) GetNotificationsForRole(roleCode, category string) ([]model.Notification, error) {
	audiences := []model.Audience{model.AudienceAll}
	switch roleCode {
	case model.RoleStudent:
		audiences = append(audiences, model.AudienceStudents)
	case model.RoleAdmin, model.RoleMasterAdmin:
		audiences = append(audiences, model.AudienceAdmins)
	}

	return s.notificationRepo.FindForAudiences(audiences, category)
}

// GetAllNotifications returns every notice regardless of audience, for
// the publishers managing them.
func (s *notificationService) GetAllNotifications() ([]model.Notification, error) {
	return s.notificationRepo.FindAll()
}
