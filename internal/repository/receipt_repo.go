package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studiodesk/internal/model"
)

type ReceiptRepository struct {
	db *pgxpool.Pool
}

func NewReceiptRepository(db *pgxpool.Pool) *ReceiptRepository {
	return &ReceiptRepository{db: db}
}

func (r *ReceiptRepository) InsertTx(ctx context.Context, tx pgx.Tx, rec *model.Receipt) error {
	query := `
        INSERT INTO receipts (id, installment_id, number, amount_cents, client_name, project_name, body, issued_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	_, err := tx.Exec(ctx, query,
		rec.ID,
		rec.InstallmentID,
		rec.Number,
		rec.AmountCents,
		rec.ClientName,
		rec.ProjectName,
		rec.Body,
		rec.IssuedAt,
	)
	return err
}

func (r *ReceiptRepository) FindByID(ctx context.Context, id string) (*model.Receipt, error) {
	query := `
        SELECT id, installment_id, number, amount_cents, client_name, project_name, body, issued_at
        FROM receipts
        WHERE id = $1
    `
	var rec model.Receipt
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rec.ID,
		&rec.InstallmentID,
		&rec.Number,
		&rec.AmountCents,
		&rec.ClientName,
		&rec.ProjectName,
		&rec.Body,
		&rec.IssuedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *ReceiptRepository) ListByContract(ctx context.Context, contractID int) ([]model.Receipt, error) {
	query := `
        SELECT r.id, r.installment_id, r.number, r.amount_cents, r.client_name, r.project_name, r.body, r.issued_at
        FROM receipts r
        JOIN installments i ON i.id = r.installment_id
        WHERE i.contract_id = $1
        ORDER BY r.issued_at DESC
    `
	rows, err := r.db.Query(ctx, query, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	receipts := []model.Receipt{}
	for rows.Next() {
		var rec model.Receipt
		if err := rows.Scan(
			&rec.ID,
			&rec.InstallmentID,
			&rec.Number,
			&rec.AmountCents,
			&rec.ClientName,
			&rec.ProjectName,
			&rec.Body,
			&rec.IssuedAt,
		); err != nil {
			return nil, err
		}
		receipts = append(receipts, rec)
	}
	return receipts, rows.Err()
}
