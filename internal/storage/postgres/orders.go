package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/furnirent/internal/domain/errors"
	"github.com/polkiloo/furnirent/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

// queryer is the read side shared by the pool and a transaction.
type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const orderColumns = `id, renter_id, renter_name, renter_email, total, status, ordered_at, start_date, end_date,
        delivery_address, notes, transport_status, user_proposed_cost, admin_proposed_cost, accepted_cost,
        last_proposer, proposed_at, deposit_amount, balance_amount, deposit_status, balance_status,
        deposit_paid_at, balance_paid_at, pay_on_delivery, version, updated_at`

const lineColumns = `order_id, product_id, product_name, image_url, unit_price, quantity, rental_days, subtotal`

func (r *orderRepository) Create(ctx context.Context, order *model.RentalOrder) error {
	const insertOrder = `INSERT INTO rental_orders (id, renter_id, renter_name, renter_email, total, status, ordered_at,
            start_date, end_date, delivery_address, notes, transport_status, pay_on_delivery, version)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 1)
        RETURNING version, updated_at`

	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, line := range order.Lines {
			if err := adjustStockTx(ctx, tx, line.ProductID, -line.Quantity); err != nil {
				return err
			}
		}

		err := tx.QueryRow(ctx, insertOrder,
			order.ID, order.RenterID, order.RenterName, order.RenterEmail, order.Total, order.Status, order.OrderedAt,
			order.StartDate, order.EndDate, order.DeliveryAddress, order.Notes, order.Transport.Status, order.Payment.PayOnDelivery,
		).Scan(&order.Version, &order.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}

		return insertLinesTx(ctx, tx, order.ID, order.Lines)
	})
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.RentalOrder, error) {
	const query = `SELECT ` + orderColumns + ` FROM rental_orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}

	lines, err := loadLines(ctx, r.storage.pool, []string{id})
	if err != nil {
		return nil, err
	}
	order.Lines = lines[id]
	return order, nil
}

func (r *orderRepository) ListByRenter(ctx context.Context, renterID int64) ([]model.RentalOrder, error) {
	const query = `SELECT ` + orderColumns + ` FROM rental_orders WHERE renter_id=$1 ORDER BY ordered_at DESC`
	return r.list(ctx, query, renterID)
}

func (r *orderRepository) List(ctx context.Context, status model.OrderStatus) ([]model.RentalOrder, error) {
	const query = `SELECT ` + orderColumns + ` FROM rental_orders WHERE ($1 = '' OR status = $1) ORDER BY ordered_at DESC`
	return r.list(ctx, query, string(status))
}

func (r *orderRepository) list(ctx context.Context, query string, arg any) ([]model.RentalOrder, error) {
	rows, err := r.storage.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		result []model.RentalOrder
		ids    []string
	)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return result, nil
	}

	lines, err := loadLines(ctx, r.storage.pool, ids)
	if err != nil {
		return nil, err
	}
	for i := range result {
		result[i].Lines = lines[result[i].ID]
	}
	return result, nil
}

func (r *orderRepository) Update(ctx context.Context, order *model.RentalOrder, moves ...model.StockMove) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if err := updateOrderTx(ctx, tx, order); err != nil {
			return err
		}
		for _, move := range moves {
			if move.Delta == 0 {
				continue
			}
			if err := adjustStockTx(ctx, tx, move.ProductID, move.Delta); err != nil {
				return err
			}
		}
		return nil
	})
}

// updateOrderTx writes the order when its stored version still matches and
// advances the version. Lines are rewritten as a whole.
func updateOrderTx(ctx context.Context, tx pgx.Tx, order *model.RentalOrder) error {
	const updateOrder = `UPDATE rental_orders SET
            total=$3, status=$4, start_date=$5, end_date=$6, delivery_address=$7, notes=$8,
            transport_status=$9, user_proposed_cost=$10, admin_proposed_cost=$11, accepted_cost=$12,
            last_proposer=$13, proposed_at=$14, deposit_amount=$15, balance_amount=$16,
            deposit_status=$17, balance_status=$18, deposit_paid_at=$19, balance_paid_at=$20,
            pay_on_delivery=$21, version=version+1, updated_at=NOW()
        WHERE id=$1 AND version=$2
        RETURNING version, updated_at`

	t, p := order.Transport, order.Payment
	err := tx.QueryRow(ctx, updateOrder,
		order.ID, order.Version, order.Total, order.Status, order.StartDate, order.EndDate, order.DeliveryAddress, order.Notes,
		t.Status, t.UserProposedCost, t.AdminProposedCost, t.AcceptedCost, t.LastProposer, t.ProposedAt,
		p.DepositAmount, p.BalanceAmount, p.DepositStatus, p.BalanceStatus, p.DepositPaidAt, p.BalancePaidAt, p.PayOnDelivery,
	).Scan(&order.Version, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrVersionConflict
		}
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM order_lines WHERE order_id=$1`, order.ID); err != nil {
		return err
	}
	return insertLinesTx(ctx, tx, order.ID, order.Lines)
}

func insertLinesTx(ctx context.Context, tx pgx.Tx, orderID string, lines []model.CartLine) error {
	const insertLine = `INSERT INTO order_lines (order_id, position, product_id, product_name, image_url, unit_price, quantity, rental_days, subtotal)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for i, line := range lines {
		if _, err := tx.Exec(ctx, insertLine, orderID, i, line.ProductID, line.ProductName, line.ImageURL,
			line.UnitPrice, line.Quantity, line.RentalDays, line.Subtotal); err != nil {
			return err
		}
	}
	return nil
}

func loadLines(ctx context.Context, q queryer, orderIDs []string) (map[string][]model.CartLine, error) {
	const query = `SELECT ` + lineColumns + ` FROM order_lines WHERE order_id = ANY($1) ORDER BY order_id, position`
	rows, err := q.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]model.CartLine, len(orderIDs))
	for rows.Next() {
		var (
			orderID string
			l       model.CartLine
		)
		if err := rows.Scan(&orderID, &l.ProductID, &l.ProductName, &l.ImageURL, &l.UnitPrice, &l.Quantity, &l.RentalDays, &l.Subtotal); err != nil {
			return nil, err
		}
		result[orderID] = append(result[orderID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanOrder(row pgx.Row) (*model.RentalOrder, error) {
	var o model.RentalOrder
	t, p := &o.Transport, &o.Payment
	err := row.Scan(
		&o.ID, &o.RenterID, &o.RenterName, &o.RenterEmail, &o.Total, &o.Status, &o.OrderedAt, &o.StartDate, &o.EndDate,
		&o.DeliveryAddress, &o.Notes, &t.Status, &t.UserProposedCost, &t.AdminProposedCost, &t.AcceptedCost,
		&t.LastProposer, &t.ProposedAt, &p.DepositAmount, &p.BalanceAmount, &p.DepositStatus, &p.BalanceStatus,
		&p.DepositPaidAt, &p.BalancePaidAt, &p.PayOnDelivery, &o.Version, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
