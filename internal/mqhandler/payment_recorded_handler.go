package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"studiodesk/internal/mq"
	"studiodesk/internal/service"
)

type PaymentRecordedHandler struct {
	notificationService *service.NotificationService
	logger              *zap.Logger
}

func NewPaymentRecordedHandler(notificationService *service.NotificationService, logger *zap.Logger) *PaymentRecordedHandler {
	return &PaymentRecordedHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

func (h *PaymentRecordedHandler) HandlePaymentRecorded(ctx context.Context, raw json.RawMessage) error {
	var p mq.PaymentRecordedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("Failed to unmarshal payment recorded payload", zap.Error(err))
		return err
	}

	h.logger.Info("Processing payment recorded event",
		zap.Int("installment_id", p.InstallmentID),
		zap.Int("contract_id", p.ContractID),
		zap.Int64("amount_cents", p.AmountCents),
	)

	message := fmt.Sprintf("Installment %d of contract %d paid on %s (receipt %s)",
		p.Number, p.ContractID, p.PaidAt, p.ReceiptID)
	return h.notificationService.Notify(ctx, "payment_recorded", p.ContractID, message)
}
