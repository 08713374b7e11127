package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"studiodesk/internal/model"
	"studiodesk/internal/repository"
)

// NotificationService writes the worker's notification records and
// serves the unread list to the API.
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	installmentRepo  *repository.InstallmentRepository
	contractRepo     *repository.ContractRepository
	logger           *zap.Logger
}

func NewNotificationService(
	notificationRepo *repository.NotificationRepository,
	installmentRepo *repository.InstallmentRepository,
	contractRepo *repository.ContractRepository,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		installmentRepo:  installmentRepo,
		contractRepo:     contractRepo,
		logger:           logger,
	}
}

func (s *NotificationService) Notify(ctx context.Context, kind string, contractID int, message string) error {
	id, err := s.notificationRepo.Insert(ctx, &model.Notification{
		Kind:       kind,
		ContractID: contractID,
		Message:    message,
	})
	if err != nil {
		return err
	}
	s.logger.Info("Notification created",
		zap.Int("notification_id", id),
		zap.String("kind", kind),
		zap.Int("contract_id", contractID),
	)
	return nil
}

// RemindOverdue writes one reminder per overdue installment, skipping
// installments already reminded within the last day. Runs after the
// overdue sweep so freshly flipped installments are included.
func (s *NotificationService) RemindOverdue(ctx context.Context) error {
	installments, err := s.installmentRepo.ListOverdue(ctx)
	if err != nil {
		return err
	}

	for _, ins := range installments {
		message := fmt.Sprintf("Installment %d of contract %d is overdue since %s", ins.Number, ins.ContractID, ins.DueDate)
		seen, err := s.notificationRepo.ExistsRecent(ctx, "installment_overdue", ins.ContractID, message)
		if err != nil {
			return err
		}
		if seen {
			continue
		}
		if err := s.Notify(ctx, "installment_overdue", ins.ContractID, message); err != nil {
			return err
		}
	}
	return nil
}

func (s *NotificationService) ListUnread(ctx context.Context) ([]model.Notification, error) {
	return s.notificationRepo.ListUnread(ctx)
}

func (s *NotificationService) MarkRead(ctx context.Context, id int) error {
	return s.notificationRepo.MarkRead(ctx, id)
}
