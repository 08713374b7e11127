package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"studiodesk/internal/model"
)

type ContractRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewContractRepository(db *pgxpool.Pool, logger *zap.Logger) *ContractRepository {
	return &ContractRepository{
		db:     db,
		logger: logger,
	}
}

// InsertTx inserts a contract inside the caller's transaction. Contract
// creation also writes the installment plan, the schedule and an outbox
// event, so everything shares one transaction.
func (r *ContractRepository) InsertTx(ctx context.Context, tx pgx.Tx, c *model.Contract) (int, error) {
	query := `
        INSERT INTO contracts (client_id, project_name, total_value_cents, signing_date, installment_count, payment_day, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	var id int
	err := tx.QueryRow(ctx, query,
		c.ClientID,
		c.ProjectName,
		c.TotalValueCents,
		c.SigningDate,
		c.InstallmentCount,
		c.PaymentDay,
		c.Status,
	).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to insert contract", zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *ContractRepository) UpdateTx(ctx context.Context, tx pgx.Tx, c *model.Contract) error {
	query := `
        UPDATE contracts
        SET project_name = $1, total_value_cents = $2, signing_date = $3,
            installment_count = $4, payment_day = $5, updated_at = NOW()
        WHERE id = $6
    `
	tag, err := tx.Exec(ctx, query,
		c.ProjectName,
		c.TotalValueCents,
		c.SigningDate,
		c.InstallmentCount,
		c.PaymentDay,
		c.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *ContractRepository) UpdateStatus(ctx context.Context, id int, status model.ContractStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE contracts SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *ContractRepository) Delete(ctx context.Context, id int) error {
	// Installments, schedule and stages cascade via FK.
	tag, err := r.db.Exec(ctx, `DELETE FROM contracts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *ContractRepository) FindByID(ctx context.Context, id int) (*model.Contract, error) {
	query := `
        SELECT c.id, c.client_id, cl.name, c.project_name, c.total_value_cents,
               c.signing_date, c.installment_count, c.payment_day, c.status,
               c.created_at, c.updated_at
        FROM contracts c
        JOIN clients cl ON cl.id = c.client_id
        WHERE c.id = $1
    `
	var c model.Contract
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.ClientID,
		&c.ClientName,
		&c.ProjectName,
		&c.TotalValueCents,
		&c.SigningDate,
		&c.InstallmentCount,
		&c.PaymentDay,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ContractRepository) List(ctx context.Context) ([]model.Contract, error) {
	query := `
        SELECT c.id, c.client_id, cl.name, c.project_name, c.total_value_cents,
               c.signing_date, c.installment_count, c.payment_day, c.status,
               c.created_at, c.updated_at
        FROM contracts c
        JOIN clients cl ON cl.id = c.client_id
        ORDER BY c.created_at DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contracts := []model.Contract{}
	for rows.Next() {
		var c model.Contract
		if err := rows.Scan(
			&c.ID,
			&c.ClientID,
			&c.ClientName,
			&c.ProjectName,
			&c.TotalValueCents,
			&c.SigningDate,
			&c.InstallmentCount,
			&c.PaymentDay,
			&c.Status,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

// CountActiveByClient is used to block deleting clients that still own
// live contracts.
func (r *ContractRepository) CountActiveByClient(ctx context.Context, clientID int) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
        SELECT COUNT(*) FROM contracts
        WHERE client_id = $1 AND status IN ('draft', 'active')
    `, clientID).Scan(&n)
	return n, err
}

func (r *ContractRepository) CountByStatus(ctx context.Context, status model.ContractStatus) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contracts WHERE status = $1`, status).Scan(&n)
	return n, err
}
