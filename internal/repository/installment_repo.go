package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studiodesk/internal/model"
)

type InstallmentRepository struct {
	db *pgxpool.Pool
}

func NewInstallmentRepository(db *pgxpool.Pool) *InstallmentRepository {
	return &InstallmentRepository{db: db}
}

func (r *InstallmentRepository) InsertBatchTx(ctx context.Context, tx pgx.Tx, installments []model.Installment) error {
	query := `
        INSERT INTO installments (contract_id, number, amount_cents, due_date, status)
        VALUES ($1, $2, $3, $4, $5)
    `
	for _, ins := range installments {
		if _, err := tx.Exec(ctx, query,
			ins.ContractID,
			ins.Number,
			ins.AmountCents,
			ins.DueDate,
			ins.Status,
		); err != nil {
			return err
		}
	}
	return nil
}

// DeleteUnpaidByContractTx clears the pending remainder of a plan so
// contract edits can regenerate it without touching paid rows.
func (r *InstallmentRepository) DeleteUnpaidByContractTx(ctx context.Context, tx pgx.Tx, contractID int) error {
	_, err := tx.Exec(ctx, `
        DELETE FROM installments
        WHERE contract_id = $1 AND status <> 'paid'
    `, contractID)
	return err
}

func (r *InstallmentRepository) FindByID(ctx context.Context, id int) (*model.Installment, error) {
	query := `
        SELECT id, contract_id, number, amount_cents, due_date, status, paid_at, receipt_id, created_at, updated_at
        FROM installments
        WHERE id = $1
    `
	var ins model.Installment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&ins.ID,
		&ins.ContractID,
		&ins.Number,
		&ins.AmountCents,
		&ins.DueDate,
		&ins.Status,
		&ins.PaidAt,
		&ins.ReceiptID,
		&ins.CreatedAt,
		&ins.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &ins, nil
}

func (r *InstallmentRepository) ListByContract(ctx context.Context, contractID int) ([]model.Installment, error) {
	query := `
        SELECT id, contract_id, number, amount_cents, due_date, status, paid_at, receipt_id, created_at, updated_at
        FROM installments
        WHERE contract_id = $1
        ORDER BY number ASC
    `
	return r.list(ctx, query, contractID)
}

// ListOverdueCandidates returns pending installments whose due date has
// passed, for the overdue sweep.
func (r *InstallmentRepository) ListOverdueCandidates(ctx context.Context, asOf model.Date) ([]model.Installment, error) {
	query := `
        SELECT id, contract_id, number, amount_cents, due_date, status, paid_at, receipt_id, created_at, updated_at
        FROM installments
        WHERE status = 'pending' AND due_date < $1
        ORDER BY due_date ASC
    `
	return r.list(ctx, query, asOf)
}

// ListOverdue returns installments already marked overdue, for the
// reminder pass.
func (r *InstallmentRepository) ListOverdue(ctx context.Context) ([]model.Installment, error) {
	query := `
        SELECT id, contract_id, number, amount_cents, due_date, status, paid_at, receipt_id, created_at, updated_at
        FROM installments
        WHERE status = 'overdue'
        ORDER BY due_date ASC
    `
	return r.list(ctx, query)
}

func (r *InstallmentRepository) list(ctx context.Context, query string, args ...any) ([]model.Installment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	installments := []model.Installment{}
	for rows.Next() {
		var ins model.Installment
		if err := rows.Scan(
			&ins.ID,
			&ins.ContractID,
			&ins.Number,
			&ins.AmountCents,
			&ins.DueDate,
			&ins.Status,
			&ins.PaidAt,
			&ins.ReceiptID,
			&ins.CreatedAt,
			&ins.UpdatedAt,
		); err != nil {
			return nil, err
		}
		installments = append(installments, ins)
	}
	return installments, rows.Err()
}

func (r *InstallmentRepository) MarkPaidTx(ctx context.Context, tx pgx.Tx, id int, paidAt model.Date, receiptID string) error {
	tag, err := tx.Exec(ctx, `
        UPDATE installments
        SET status = 'paid', paid_at = $1, receipt_id = $2, updated_at = NOW()
        WHERE id = $3
    `, paidAt, receiptID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *InstallmentRepository) MarkOverdue(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `
        UPDATE installments
        SET status = 'overdue', updated_at = NOW()
        WHERE id = $1 AND status = 'pending'
    `, id)
	return err
}

// SumCentsByStatus aggregates outstanding and overdue totals for the
// dashboard.
func (r *InstallmentRepository) SumCentsByStatus(ctx context.Context, status model.PaymentStatus) (int64, error) {
	var sum int64
	err := r.db.QueryRow(ctx, `
        SELECT COALESCE(SUM(amount_cents), 0) FROM installments WHERE status = $1
    `, status).Scan(&sum)
	return sum, err
}
