package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/furnirent/internal/domain/errors"
	"github.com/polkiloo/furnirent/internal/domain/model"
)

type productRepository struct {
	storage *Storage
}

const productColumns = `id, name, description, price, image_url, stock, active, created_at`

func (r *productRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	const query = `INSERT INTO products (id, name, description, price, image_url, stock, active)
                   VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at`
	created := *product
	err := r.storage.pool.QueryRow(ctx, query, created.ID, created.Name, created.Description, created.Price, created.ImageURL, created.Stock, created.Active).
		Scan(&created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	p, err := scanProduct(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (r *productRepository) List(ctx context.Context, activeOnly bool) ([]model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE ($1 = FALSE OR active) ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
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

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Stock, &p.Active, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// adjustStockTx moves available stock by delta, refusing to go below zero.
func adjustStockTx(ctx context.Context, tx pgx.Tx, productID string, delta int) error {
	const query = `UPDATE products SET stock = stock + $2 WHERE id=$1 AND stock + $2 >= 0`
	tag, err := tx.Exec(ctx, query, productID, delta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrInsufficientStock
	}
	return nil
}
