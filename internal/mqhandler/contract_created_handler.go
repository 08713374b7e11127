package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"studiodesk/internal/mq"
	"studiodesk/internal/service"
)

type ContractCreatedHandler struct {
	notificationService *service.NotificationService
	logger              *zap.Logger
}

func NewContractCreatedHandler(notificationService *service.NotificationService, logger *zap.Logger) *ContractCreatedHandler {
	return &ContractCreatedHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

// HandleContractCreated writes a notification for a newly signed
// contract. Inserts are deduplicated downstream, so redelivery of the
// same event is harmless.
func (h *ContractCreatedHandler) HandleContractCreated(ctx context.Context, raw json.RawMessage) error {
	var p mq.ContractCreatedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("Failed to unmarshal contract created payload", zap.Error(err))
		return err
	}

	h.logger.Info("Processing contract created event",
		zap.Int("contract_id", p.ContractID),
		zap.String("client_name", p.ClientName),
		zap.String("project_name", p.ProjectName),
	)

	message := fmt.Sprintf("Contract %q signed with %s on %s (%d stages scheduled)",
		p.ProjectName, p.ClientName, p.SigningDate, p.StageCount)
	return h.notificationService.Notify(ctx, "contract_created", p.ContractID, message)
}
