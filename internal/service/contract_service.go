package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"studiodesk/internal/model"
	"studiodesk/internal/mq"
	"studiodesk/internal/repository"
	"studiodesk/internal/schedule"
	"studiodesk/pkg/metrics"
	"studiodesk/pkg/outbox"
)

// ContractService owns the contract lifecycle. Creating a contract also
// materializes its installment plan and project schedule; editing terms
// regenerates both while preserving payment and completion history.
type ContractService struct {
	db              *pgxpool.Pool
	contractRepo    *repository.ContractRepository
	clientRepo      *repository.ClientRepository
	templateRepo    *repository.TemplateRepository
	scheduleRepo    *repository.ScheduleRepository
	installmentRepo *repository.InstallmentRepository
	outboxRepo      *outbox.Repository
	dashboard       *DashboardService
	logger          *zap.Logger
}

func NewContractService(
	db *pgxpool.Pool,
	contractRepo *repository.ContractRepository,
	clientRepo *repository.ClientRepository,
	templateRepo *repository.TemplateRepository,
	scheduleRepo *repository.ScheduleRepository,
	installmentRepo *repository.InstallmentRepository,
	outboxRepo *outbox.Repository,
	dashboard *DashboardService,
	logger *zap.Logger,
) *ContractService {
	return &ContractService{
		db:              db,
		contractRepo:    contractRepo,
		clientRepo:      clientRepo,
		templateRepo:    templateRepo,
		scheduleRepo:    scheduleRepo,
		installmentRepo: installmentRepo,
		outboxRepo:      outboxRepo,
		dashboard:       dashboard,
		logger:          logger,
	}
}

type ContractInput struct {
	ClientID         int        `json:"client_id" binding:"required"`
	ProjectName      string     `json:"project_name" binding:"required"`
	TotalValueCents  int64      `json:"total_value_cents" binding:"required,gt=0"`
	SigningDate      model.Date `json:"signing_date"`
	InstallmentCount int        `json:"installment_count" binding:"required,gt=0"`
	PaymentDay       int        `json:"payment_day" binding:"gte=0,lte=31"`
}

// Create activates a contract and, in the same transaction, writes its
// installment plan, its schedule generated from the current templates,
// and a contract.created outbox event.
func (s *ContractService) Create(ctx context.Context, in ContractInput) (*model.Contract, error) {
	client, err := s.clientRepo.FindByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}

	templates, err := s.templateRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stage templates: %w", err)
	}

	contract := &model.Contract{
		ClientID:         in.ClientID,
		ClientName:       client.Name,
		ProjectName:      in.ProjectName,
		TotalValueCents:  in.TotalValueCents,
		SigningDate:      in.SigningDate,
		InstallmentCount: in.InstallmentCount,
		PaymentDay:       in.PaymentDay,
		Status:           model.ContractActive,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	id, err := s.contractRepo.InsertTx(ctx, tx, contract)
	if err != nil {
		return nil, err
	}
	contract.ID = id

	plan := BuildInstallmentPlan(*contract)
	if err := s.installmentRepo.InsertBatchTx(ctx, tx, plan); err != nil {
		return nil, fmt.Errorf("failed to insert installment plan: %w", err)
	}

	stages := schedule.Generate(templates, contract.SigningDate)
	sched := &model.Schedule{
		ContractID:  id,
		StartDate:   contract.SigningDate,
		ClientName:  client.Name,
		ProjectName: contract.ProjectName,
		Stages:      stages,
	}
	if _, err := s.scheduleRepo.InsertTx(ctx, tx, sched); err != nil {
		return nil, fmt.Errorf("failed to insert schedule: %w", err)
	}

	aggregateID := int64(id)
	payload := mq.ContractCreatedPayload{
		ContractID:  id,
		ClientID:    client.ID,
		ClientName:  client.Name,
		ProjectName: contract.ProjectName,
		SigningDate: contract.SigningDate,
		StageCount:  len(stages),
	}
	if err := outbox.InsertInTx(ctx, tx, s.outboxRepo, "contract", &aggregateID, mq.RoutingContractCreated, payload); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.dashboard.Invalidate(ctx)
	s.logger.Info("Contract created",
		zap.Int("contract_id", id),
		zap.Int("client_id", client.ID),
		zap.Int("stages", len(stages)),
	)
	return contract, nil
}

// Update edits contract terms. The unpaid remainder of the installment
// plan is regenerated, and the schedule is rebuilt from the current
// templates with prior completion dates preserved by position, then
// recalculated against the new signing date. A contract without a
// schedule (imported data) gets one synthesized from the templates.
func (s *ContractService) Update(ctx context.Context, id int, in ContractInput) (*model.Contract, error) {
	contract, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contract.Status == model.ContractCancelled {
		return nil, model.ErrContractNotActive
	}

	contract.ProjectName = in.ProjectName
	contract.TotalValueCents = in.TotalValueCents
	contract.SigningDate = in.SigningDate
	contract.InstallmentCount = in.InstallmentCount
	contract.PaymentDay = in.PaymentDay

	installments, err := s.installmentRepo.ListByContract(ctx, id)
	if err != nil {
		return nil, err
	}
	var paid []model.Installment
	for _, ins := range installments {
		if ins.Status == model.PaymentPaid {
			paid = append(paid, ins)
		}
	}

	templates, err := s.templateRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.scheduleRepo.FindByContractID(ctx, id)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := s.contractRepo.UpdateTx(ctx, tx, contract); err != nil {
		return nil, err
	}

	if err := s.installmentRepo.DeleteUnpaidByContractTx(ctx, tx, id); err != nil {
		return nil, err
	}
	if err := s.installmentRepo.InsertBatchTx(ctx, tx, RebuildInstallmentPlan(*contract, paid)); err != nil {
		return nil, err
	}

	if existing == nil {
		stages := schedule.Generate(templates, contract.SigningDate)
		sched := &model.Schedule{
			ContractID:  id,
			StartDate:   contract.SigningDate,
			ClientName:  contract.ClientName,
			ProjectName: contract.ProjectName,
			Stages:      stages,
		}
		if _, err := s.scheduleRepo.InsertTx(ctx, tx, sched); err != nil {
			return nil, err
		}
	} else {
		stages := rebuildStages(templates, existing.Stages, contract.SigningDate)
		if err := s.scheduleRepo.ReplaceStagesTx(ctx, tx, existing.ID, contract.SigningDate, stages); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.IncrementScheduleRecalculation("contract_edit")
	s.dashboard.Invalidate(ctx)
	s.logger.Info("Contract updated", zap.Int("contract_id", id))
	return contract, nil
}

// rebuildStages regenerates the stage list from the templates,
// carrying completion dates over from the old list by position, then
// recalculates the chain so preserved completions anchor their
// successors.
func rebuildStages(templates []model.StageTemplate, old []model.Stage, startDate model.Date) []model.Stage {
	stages := schedule.Generate(templates, startDate)
	for i := range stages {
		if i < len(old) && old[i].CompletionDate != nil {
			done := *old[i].CompletionDate
			stages[i].CompletionDate = &done
		}
	}
	return schedule.Recalculate(stages, startDate)
}

func (s *ContractService) Cancel(ctx context.Context, id int) error {
	contract, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if contract.Status == model.ContractCancelled {
		return nil
	}
	if err := s.contractRepo.UpdateStatus(ctx, id, model.ContractCancelled); err != nil {
		return err
	}
	s.dashboard.Invalidate(ctx)
	return nil
}

// Delete removes a contract and everything it owns: installments,
// receipts, schedule and stages all cascade.
func (s *ContractService) Delete(ctx context.Context, id int) error {
	if err := s.contractRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.dashboard.Invalidate(ctx)
	s.logger.Info("Contract deleted", zap.Int("contract_id", id))
	return nil
}

func (s *ContractService) Get(ctx context.Context, id int) (*model.Contract, error) {
	return s.contractRepo.FindByID(ctx, id)
}

func (s *ContractService) List(ctx context.Context) ([]model.Contract, error) {
	return s.contractRepo.List(ctx)
}
