package service

import (
	"context"
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

// ScheduleService is the editing surface over the schedule engine:
// every mutation recalculates the full stage chain and persists the
// result wholesale.
type ScheduleService struct {
	db           *pgxpool.Pool
	scheduleRepo *repository.ScheduleRepository
	outboxRepo   *outbox.Repository
	phaseGroups  []model.PhaseGroup
	logger       *zap.Logger
}

func NewScheduleService(
	db *pgxpool.Pool,
	scheduleRepo *repository.ScheduleRepository,
	outboxRepo *outbox.Repository,
	phaseGroups []model.PhaseGroup,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		db:           db,
		scheduleRepo: scheduleRepo,
		outboxRepo:   outboxRepo,
		phaseGroups:  phaseGroups,
		logger:       logger,
	}
}

// StageView is a stage plus its derived schedule label.
type StageView struct {
	model.Stage
	Health model.StageHealth `json:"health"`
}

// ScheduleView is what the editor UI works with.
type ScheduleView struct {
	ID          int                   `json:"id"`
	ContractID  int                   `json:"contract_id"`
	StartDate   model.Date            `json:"start_date"`
	ClientName  string                `json:"client_name"`
	ProjectName string                `json:"project_name"`
	Stages      []StageView           `json:"stages"`
	Progress    []model.PhaseProgress `json:"progress"`
}

func (s *ScheduleService) Get(ctx context.Context, id int) (*ScheduleView, error) {
	sched, err := s.scheduleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(sched), nil
}

func (s *ScheduleService) GetByContract(ctx context.Context, contractID int) (*ScheduleView, error) {
	sched, err := s.scheduleRepo.FindByContractID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	return s.view(sched), nil
}

func (s *ScheduleService) view(sched *model.Schedule) *ScheduleView {
	today := model.Today()
	stages := make([]StageView, len(sched.Stages))
	for i, st := range sched.Stages {
		stages[i] = StageView{Stage: st, Health: schedule.Health(st, today)}
	}
	return &ScheduleView{
		ID:          sched.ID,
		ContractID:  sched.ContractID,
		StartDate:   sched.StartDate,
		ClientName:  sched.ClientName,
		ProjectName: sched.ProjectName,
		Stages:      stages,
		Progress:    schedule.Progress(sched.Stages, s.phaseGroups, today),
	}
}

// EditStageDuration changes one stage's duration and recalculates the
// chain.
func (s *ScheduleService) EditStageDuration(ctx context.Context, scheduleID, stageID, durationWorkDays int) (*ScheduleView, error) {
	if durationWorkDays < 0 {
		s.logger.Warn("Negative stage duration clamped to zero",
			zap.Int("schedule_id", scheduleID),
			zap.Int("stage_id", stageID),
			zap.Int("duration", durationWorkDays),
		)
		durationWorkDays = 0
	}
	return s.mutate(ctx, scheduleID, "stage_edit", func(sched *model.Schedule) error {
		st := findStage(sched.Stages, stageID)
		if st == nil {
			return model.ErrNotFound
		}
		st.DurationWorkDays = durationWorkDays
		return nil
	}, nil)
}

// SetCompletion marks a stage done. Out-of-order completion is legal;
// it just changes the anchor for that position in the chain.
func (s *ScheduleService) SetCompletion(ctx context.Context, scheduleID, stageID int, done model.Date) (*ScheduleView, error) {
	if done.IsZero() {
		return nil, fmt.Errorf("completion date is required")
	}
	var completed *model.Stage
	view, err := s.mutate(ctx, scheduleID, "completion", func(sched *model.Schedule) error {
		st := findStage(sched.Stages, stageID)
		if st == nil {
			return model.ErrNotFound
		}
		st.CompletionDate = &done
		completed = st
		return nil
	}, func(sched *model.Schedule) (string, *int64, string, any) {
		aggregateID := int64(sched.ContractID)
		return "schedule", &aggregateID, mq.RoutingStageCompleted, mq.StageCompletedPayload{
			ScheduleID:     sched.ID,
			ContractID:     sched.ContractID,
			StageID:        stageID,
			StageName:      completed.Name,
			CompletionDate: done,
		}
	})
	return view, err
}

// ClearCompletion reopens a stage.
func (s *ScheduleService) ClearCompletion(ctx context.Context, scheduleID, stageID int) (*ScheduleView, error) {
	return s.mutate(ctx, scheduleID, "completion", func(sched *model.Schedule) error {
		st := findStage(sched.Stages, stageID)
		if st == nil {
			return model.ErrNotFound
		}
		st.CompletionDate = nil
		return nil
	}, nil)
}

// SetStartDate moves the project anchor and ripples the whole chain.
func (s *ScheduleService) SetStartDate(ctx context.Context, scheduleID int, start model.Date) (*ScheduleView, error) {
	if start.IsZero() {
		return nil, fmt.Errorf("start date is required")
	}
	return s.mutate(ctx, scheduleID, "start_date", func(sched *model.Schedule) error {
		sched.StartDate = start
		return nil
	}, nil)
}

type eventFn func(*model.Schedule) (aggregateType string, aggregateID *int64, routingKey string, payload any)

// mutate loads the schedule, applies the edit, recalculates the whole
// chain and replaces the stage array in one transaction, optionally
// writing an outbox event alongside.
func (s *ScheduleService) mutate(ctx context.Context, scheduleID int, trigger string, edit func(*model.Schedule) error, event eventFn) (*ScheduleView, error) {
	sched, err := s.scheduleRepo.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	if err := edit(sched); err != nil {
		return nil, err
	}

	sched.Stages = schedule.Recalculate(sched.Stages, sched.StartDate)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := s.scheduleRepo.ReplaceStagesTx(ctx, tx, sched.ID, sched.StartDate, sched.Stages); err != nil {
		return nil, err
	}

	if event != nil {
		aggregateType, aggregateID, routingKey, payload := event(sched)
		if err := outbox.InsertInTx(ctx, tx, s.outboxRepo, aggregateType, aggregateID, routingKey, payload); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.IncrementScheduleRecalculation(trigger)
	return s.view(sched), nil
}

func findStage(stages []model.Stage, stageID int) *model.Stage {
	for i := range stages {
		if stages[i].ID == stageID {
			return &stages[i]
		}
	}
	return nil
}
