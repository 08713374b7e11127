package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"studiodesk/internal/mq"
	"studiodesk/internal/service"
)

type StageCompletedHandler struct {
	notificationService *service.NotificationService
	logger              *zap.Logger
}

func NewStageCompletedHandler(notificationService *service.NotificationService, logger *zap.Logger) *StageCompletedHandler {
	return &StageCompletedHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

func (h *StageCompletedHandler) HandleStageCompleted(ctx context.Context, raw json.RawMessage) error {
	var p mq.StageCompletedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("Failed to unmarshal stage completed payload", zap.Error(err))
		return err
	}

	h.logger.Info("Processing stage completed event",
		zap.Int("schedule_id", p.ScheduleID),
		zap.Int("stage_id", p.StageID),
		zap.String("stage_name", p.StageName),
	)

	message := fmt.Sprintf("Stage %q of contract %d completed on %s",
		p.StageName, p.ContractID, p.CompletionDate)
	return h.notificationService.Notify(ctx, "stage_completed", p.ContractID, message)
}
