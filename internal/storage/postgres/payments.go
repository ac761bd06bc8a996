package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/furnirent/internal/domain/errors"
	"github.com/polkiloo/furnirent/internal/domain/model"
)

type paymentRepository struct {
	storage *Storage
}

const paymentColumns = `id, order_id, payer_id, amount, kind, method, status, paid_at, transaction_ref, card_last4, created_at`

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	const query = `INSERT INTO payments (id, order_id, payer_id, amount, kind, method, status, transaction_ref, card_last4)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING created_at`
	err := r.storage.pool.QueryRow(ctx, query, payment.ID, payment.OrderID, payment.PayerID, payment.Amount,
		payment.Kind, payment.Method, payment.Status, payment.TransactionRef, payment.CardLast4).Scan(&payment.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *paymentRepository) GetByRef(ctx context.Context, ref string) (*model.Payment, error) {
	const query = `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_ref=$1`
	p, err := scanPayment(r.storage.pool.QueryRow(ctx, query, ref))
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (r *paymentRepository) FindPending(ctx context.Context, orderID string, kind model.PaymentKind) (*model.Payment, error) {
	const query = `SELECT ` + paymentColumns + ` FROM payments
                   WHERE order_id=$1 AND kind=$2 AND status='PENDING'
                   ORDER BY created_at DESC LIMIT 1`
	p, err := scanPayment(r.storage.pool.QueryRow(ctx, query, orderID, kind))
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (r *paymentRepository) ListByOrder(ctx context.Context, orderID string) ([]model.Payment, error) {
	const query = `SELECT ` + paymentColumns + ` FROM payments WHERE order_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

func (r *paymentRepository) SelectBatchForReconciliation(ctx context.Context, limit int) ([]model.Payment, error) {
	const selectQuery = `SELECT ` + paymentColumns + ` FROM payments
                         WHERE status = 'PENDING'
                         ORDER BY checked_at NULLS FIRST, created_at
                         LIMIT $1
                         FOR UPDATE SKIP LOCKED`

	var payments []model.Payment
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}
		batch, err := collectPayments(rows)
		rows.Close()
		if err != nil {
			return err
		}

		for _, p := range batch {
			if _, err := tx.Exec(ctx, `UPDATE payments SET checked_at=NOW() WHERE id=$1`, p.ID); err != nil {
				return err
			}
		}
		payments = batch
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) Settle(ctx context.Context, payment *model.Payment, order *model.RentalOrder) error {
	const settle = `UPDATE payments SET status=$2, paid_at=$3, checked_at=NOW() WHERE id=$1 AND status='PENDING'`
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, settle, payment.ID, payment.Status, payment.PaidAt)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrAlreadyPaid
		}
		if order == nil {
			return nil
		}
		return updateOrderTx(ctx, tx, order)
	})
}

func collectPayments(rows pgx.Rows) ([]model.Payment, error) {
	var result []model.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanPayment(row pgx.Row) (*model.Payment, error) {
	var p model.Payment
	err := row.Scan(&p.ID, &p.OrderID, &p.PayerID, &p.Amount, &p.Kind, &p.Method, &p.Status, &p.PaidAt,
		&p.TransactionRef, &p.CardLast4, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
