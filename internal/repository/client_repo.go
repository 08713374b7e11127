package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studiodesk/internal/model"
)

type ClientRepository struct {
	db *pgxpool.Pool
}

func NewClientRepository(db *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, c *model.Client) (int, error) {
	query := `
        INSERT INTO clients (name, email, phone, document, address, notes)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	var id int
	err := r.db.QueryRow(ctx, query, c.Name, c.Email, c.Phone, c.Document, c.Address, c.Notes).Scan(&id)
	return id, err
}

func (r *ClientRepository) Update(ctx context.Context, c *model.Client) error {
	query := `
        UPDATE clients
        SET name = $1, email = $2, phone = $3, document = $4, address = $5, notes = $6, updated_at = NOW()
        WHERE id = $7
    `
	tag, err := r.db.Exec(ctx, query, c.Name, c.Email, c.Phone, c.Document, c.Address, c.Notes, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id int) (*model.Client, error) {
	query := `
        SELECT id, name, email, phone, document, address, notes, created_at, updated_at
        FROM clients
        WHERE id = $1
    `
	var c model.Client
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Document,
		&c.Address,
		&c.Notes,
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

func (r *ClientRepository) List(ctx context.Context) ([]model.Client, error) {
	query := `
        SELECT id, name, email, phone, document, address, notes, created_at, updated_at
        FROM clients
        ORDER BY name ASC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := []model.Client{}
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Email,
			&c.Phone,
			&c.Document,
			&c.Address,
			&c.Notes,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}
