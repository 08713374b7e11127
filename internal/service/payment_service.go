package service

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"studiodesk/internal/model"
	"studiodesk/internal/mq"
	"studiodesk/internal/repository"
	"studiodesk/pkg/metrics"
	"studiodesk/pkg/outbox"
)

// PaymentService records installment payments and issues receipts.
type PaymentService struct {
	db              *pgxpool.Pool
	installmentRepo *repository.InstallmentRepository
	contractRepo    *repository.ContractRepository
	receiptRepo     *repository.ReceiptRepository
	outboxRepo      *outbox.Repository
	documents       *DocumentService
	dashboard       *DashboardService
	logger          *zap.Logger
}

func NewPaymentService(
	db *pgxpool.Pool,
	installmentRepo *repository.InstallmentRepository,
	contractRepo *repository.ContractRepository,
	receiptRepo *repository.ReceiptRepository,
	outboxRepo *outbox.Repository,
	documents *DocumentService,
	dashboard *DashboardService,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		db:              db,
		installmentRepo: installmentRepo,
		contractRepo:    contractRepo,
		receiptRepo:     receiptRepo,
		outboxRepo:      outboxRepo,
		documents:       documents,
		dashboard:       dashboard,
		logger:          logger,
	}
}

// RecordPayment marks an installment paid, issues its receipt and emits
// payment.recorded, all in one transaction.
func (s *PaymentService) RecordPayment(ctx context.Context, installmentID int, paidAt model.Date) (*model.Receipt, error) {
	if paidAt.IsZero() {
		paidAt = model.Today()
	}

	installment, err := s.installmentRepo.FindByID(ctx, installmentID)
	if err != nil {
		return nil, err
	}
	if installment.Status == model.PaymentPaid {
		return nil, model.ErrInstallmentPaid
	}

	contract, err := s.contractRepo.FindByID(ctx, installment.ContractID)
	if err != nil {
		return nil, err
	}
	if contract.Status != model.ContractActive {
		return nil, model.ErrContractNotActive
	}

	receipt := s.documents.BuildReceipt(*installment, *contract, paidAt)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := s.receiptRepo.InsertTx(ctx, tx, receipt); err != nil {
		return nil, err
	}
	if err := s.installmentRepo.MarkPaidTx(ctx, tx, installmentID, paidAt, receipt.ID); err != nil {
		return nil, err
	}

	aggregateID := int64(installmentID)
	payload := mq.PaymentRecordedPayload{
		InstallmentID: installmentID,
		ContractID:    contract.ID,
		Number:        installment.Number,
		AmountCents:   installment.AmountCents,
		PaidAt:        paidAt,
		ReceiptID:     receipt.ID,
	}
	if err := outbox.InsertInTx(ctx, tx, s.outboxRepo, "installment", &aggregateID, mq.RoutingPaymentRecorded, payload); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.IncrementPaymentRecorded()
	metrics.IncrementReceiptIssued()
	s.dashboard.Invalidate(ctx)
	s.logger.Info("Payment recorded",
		zap.Int("installment_id", installmentID),
		zap.Int("contract_id", contract.ID),
		zap.String("receipt_id", receipt.ID),
	)
	return receipt, nil
}

func (s *PaymentService) ListByContract(ctx context.Context, contractID int) ([]model.Installment, error) {
	return s.installmentRepo.ListByContract(ctx, contractID)
}

// SweepOverdue flips pending installments past their due date to
// overdue and returns how many changed. The worker runs this on a
// timer.
func (s *PaymentService) SweepOverdue(ctx context.Context, asOf model.Date) (int, error) {
	candidates, err := s.installmentRepo.ListOverdueCandidates(ctx, asOf)
	if err != nil {
		return 0, err
	}

	for _, ins := range candidates {
		if err := s.installmentRepo.MarkOverdue(ctx, ins.ID); err != nil {
			return 0, err
		}
	}

	if len(candidates) > 0 {
		s.dashboard.Invalidate(ctx)
		s.logger.Info("Overdue sweep complete", zap.Int("marked", len(candidates)))
	}
	return len(candidates), nil
}
