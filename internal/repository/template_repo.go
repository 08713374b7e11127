package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"studiodesk/internal/model"
)

type TemplateRepository struct {
	db *pgxpool.Pool
}

func NewTemplateRepository(db *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// List returns the studio's stage templates in sequence order, the
// order the schedule engine consumes them in.
func (r *TemplateRepository) List(ctx context.Context) ([]model.StageTemplate, error) {
	query := `
        SELECT id, name, duration_work_days, sequence
        FROM stage_templates
        ORDER BY sequence ASC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []model.StageTemplate{}
	for rows.Next() {
		var t model.StageTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.DurationWorkDays, &t.Sequence); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func (r *TemplateRepository) Create(ctx context.Context, t *model.StageTemplate) (int, error) {
	query := `
        INSERT INTO stage_templates (name, duration_work_days, sequence)
        VALUES ($1, $2, $3)
        RETURNING id
    `
	var id int
	err := r.db.QueryRow(ctx, query, t.Name, t.DurationWorkDays, t.Sequence).Scan(&id)
	return id, err
}

func (r *TemplateRepository) Update(ctx context.Context, t *model.StageTemplate) error {
	query := `
        UPDATE stage_templates
        SET name = $1, duration_work_days = $2, sequence = $3
        WHERE id = $4
    `
	tag, err := r.db.Exec(ctx, query, t.Name, t.DurationWorkDays, t.Sequence, t.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *TemplateRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM stage_templates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *TemplateRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM stage_templates`).Scan(&n)
	return n, err
}

// Seed inserts the configured default templates when the table is
// empty. First boot only.
func (r *TemplateRepository) Seed(ctx context.Context, templates []model.StageTemplate) error {
	n, err := r.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, t := range templates {
		if _, err := r.Create(ctx, &t); err != nil {
			return err
		}
	}
	return nil
}
