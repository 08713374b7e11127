package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"studiodesk/internal/model"
)

// ScheduleRepository persists one schedule per contract. The stage list
// is always written wholesale: every mutation deletes and reinserts the
// stage rows inside one transaction, mirroring the engine's contract
// that the stage array is replaced atomically.
type ScheduleRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewScheduleRepository(db *pgxpool.Pool, logger *zap.Logger) *ScheduleRepository {
	return &ScheduleRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ScheduleRepository) InsertTx(ctx context.Context, tx pgx.Tx, s *model.Schedule) (int, error) {
	query := `
        INSERT INTO schedules (contract_id, start_date, client_name, project_name)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	var id int
	err := tx.QueryRow(ctx, query, s.ContractID, s.StartDate, s.ClientName, s.ProjectName).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to insert schedule", zap.Error(err))
		return 0, err
	}

	if err := r.insertStagesTx(ctx, tx, id, s.Stages); err != nil {
		return 0, err
	}
	return id, nil
}

// ReplaceStagesTx swaps the whole stage array and the schedule anchor
// in one transaction.
func (r *ScheduleRepository) ReplaceStagesTx(ctx context.Context, tx pgx.Tx, scheduleID int, startDate model.Date, stages []model.Stage) error {
	tag, err := tx.Exec(ctx, `
        UPDATE schedules SET start_date = $1, updated_at = NOW() WHERE id = $2
    `, startDate, scheduleID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM schedule_stages WHERE schedule_id = $1`, scheduleID); err != nil {
		return err
	}

	return r.insertStagesTx(ctx, tx, scheduleID, stages)
}

func (r *ScheduleRepository) insertStagesTx(ctx context.Context, tx pgx.Tx, scheduleID int, stages []model.Stage) error {
	query := `
        INSERT INTO schedule_stages (schedule_id, position, stage_id, name, duration_work_days, start_date, deadline, completion_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	for i, s := range stages {
		if _, err := tx.Exec(ctx, query,
			scheduleID,
			i,
			s.ID,
			s.Name,
			s.DurationWorkDays,
			s.StartDate,
			s.Deadline,
			s.CompletionDate,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *ScheduleRepository) FindByID(ctx context.Context, id int) (*model.Schedule, error) {
	return r.findOne(ctx, `WHERE s.id = $1`, id)
}

func (r *ScheduleRepository) FindByContractID(ctx context.Context, contractID int) (*model.Schedule, error) {
	return r.findOne(ctx, `WHERE s.contract_id = $1`, contractID)
}

func (r *ScheduleRepository) findOne(ctx context.Context, where string, arg any) (*model.Schedule, error) {
	query := `
        SELECT s.id, s.contract_id, s.start_date, s.client_name, s.project_name, s.created_at, s.updated_at
        FROM schedules s ` + where
	var s model.Schedule
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&s.ID,
		&s.ContractID,
		&s.StartDate,
		&s.ClientName,
		&s.ProjectName,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}

	stages, err := r.loadStages(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Stages = stages
	return &s, nil
}

func (r *ScheduleRepository) loadStages(ctx context.Context, scheduleID int) ([]model.Stage, error) {
	query := `
        SELECT stage_id, name, duration_work_days, start_date, deadline, completion_date
        FROM schedule_stages
        WHERE schedule_id = $1
        ORDER BY position ASC
    `
	rows, err := r.db.Query(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stages := []model.Stage{}
	for rows.Next() {
		var s model.Stage
		var completion model.Date
		if err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.DurationWorkDays,
			&s.StartDate,
			&s.Deadline,
			&completion,
		); err != nil {
			return nil, err
		}
		if !completion.IsZero() {
			s.CompletionDate = &completion
		}
		stages = append(stages, s)
	}
	return stages, rows.Err()
}

// StagesDueBetween powers the dashboard's "stages due this week" panel.
func (r *ScheduleRepository) StagesDueBetween(ctx context.Context, from, to model.Date) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
        SELECT COUNT(*)
        FROM schedule_stages st
        JOIN schedules s ON s.id = st.schedule_id
        JOIN contracts c ON c.id = s.contract_id
        WHERE c.status = 'active'
          AND st.completion_date IS NULL
          AND st.deadline BETWEEN $1 AND $2
    `, from, to).Scan(&n)
	return n, err
}
