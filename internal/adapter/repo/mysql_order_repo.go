package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	domain "github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/entity"
	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/usecase"
)

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

func (r *MySQLOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO orders
  (id,items_json,customer_name,customer_phone,courier,address,note,
   subtotal,shipping_fee,total,status,proof_url,created_at,updated_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,NOW(),NOW())`,
		o.ID, items,
		o.Customer.Name, o.Customer.Phone, o.Customer.Courier, o.Customer.Address, o.Customer.Note,
		o.Subtotal, o.ShippingFee, o.Total, o.Status, o.ProofURL,
	)
	return err
}

func (r *MySQLOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,items_json,customer_name,customer_phone,courier,address,note,
       subtotal,shipping_fee,total,status,proof_url,created_at,updated_at
FROM orders WHERE id=?`, id)
	return scanOrder(row)
}

func (r *MySQLOrderRepo) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE orders SET status = ?, updated_at = NOW() WHERE id = ?`,
		status, id,
	)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *MySQLOrderRepo) ListRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id,items_json,customer_name,customer_phone,courier,address,note,
       subtotal,shipping_fee,total,status,proof_url,created_at,updated_at
FROM orders ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		o     domain.Order
		items []byte
	)
	err := row.Scan(&o.ID, &items,
		&o.Customer.Name, &o.Customer.Phone, &o.Customer.Courier, &o.Customer.Address, &o.Customer.Note,
		&o.Subtotal, &o.ShippingFee, &o.Total, &o.Status, &o.ProofURL,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
	}
	return &o, nil
}

var _ usecase.OrderRepo = (*MySQLOrderRepo)(nil)
