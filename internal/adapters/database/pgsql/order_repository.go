package pgsql

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/animal-wellness/aw_backend/internal/apperrors"
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	portsrepo "github.com/animal-wellness/aw_backend/internal/core/ports/repositories"
	"github.com/animal-wellness/aw_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

type PgxOrderRepository struct {
	BaseRepository
	txTimeout time.Duration
}

func newPgxOrderRepository(pool DBPool, txTimeout time.Duration) portsrepo.OrderRepositoryFacade {
	return &PgxOrderRepository{BaseRepository: BaseRepository{Pool: pool}, txTimeout: txTimeout}
}

var _ portsrepo.OrderRepositoryFacade = (*PgxOrderRepository)(nil)

const orderColumns = `order_id, order_number, partner_id, customer_name, customer_email, customer_phone, shipping_address,
	status, payment_status, subtotal, discount, shipping_cost, total, notes, order_date,
	created_at, created_by, last_updated_at, last_updated_by`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.OrderID,
		&o.OrderNumber,
		&o.PartnerID,
		&o.CustomerName,
		&o.CustomerEmail,
		&o.CustomerPhone,
		&o.ShippingAddress,
		&o.Status,
		&o.PaymentStatus,
		&o.Subtotal,
		&o.Discount,
		&o.ShippingCost,
		&o.Total,
		&o.Notes,
		&o.OrderDate,
		&o.CreatedAt,
		&o.CreatedBy,
		&o.LastUpdatedAt,
		&o.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	o.Items = []domain.OrderItem{}
	return &o, nil
}

// stockDemand sums item quantities per variant so repeated lines are checked together.
func stockDemand(items []domain.OrderItem) (ids []string, qty []int32) {
	totals := make(map[string]int)
	for _, it := range items {
		totals[it.VariantID] += it.Quantity
	}
	ids = make([]string, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	qty = make([]int32, len(ids))
	for i, id := range ids {
		qty[i] = int32(totals[id])
	}
	return ids, qty
}

func (r *PgxOrderRepository) SaveOrder(ctx context.Context, o domain.Order) error {
	return r.WithTx(ctx, r.txTimeout, func(ctx context.Context, tx pgx.Tx) error {
		ids, qty := stockDemand(o.Items)

		// Locks are taken in variant_id order so concurrent orders cannot deadlock.
		rows, err := tx.Query(ctx, `
			SELECT variant_id, inventory FROM product_variants
			WHERE variant_id = ANY($1)
			ORDER BY variant_id
			FOR UPDATE;
		`, ids)
		if err != nil {
			return fmt.Errorf("failed to lock variants: %w", err)
		}
		stock := make(map[string]int32, len(ids))
		for rows.Next() {
			var id string
			var inv int32
			if err := rows.Scan(&id, &inv); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan variant stock: %w", err)
			}
			stock[id] = inv
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to read variant stock: %w", err)
		}

		for i, id := range ids {
			inv, ok := stock[id]
			if !ok {
				return fmt.Errorf("%w: variant %s", apperrors.ErrNotFound, id)
			}
			if inv < qty[i] {
				return fmt.Errorf("%w: variant %s has %d in stock, %d requested", apperrors.ErrConflict, id, inv, qty[i])
			}
		}

		cmdTag, err := tx.Exec(ctx, `
			UPDATE product_variants v
			SET inventory = v.inventory - d.qty
			FROM unnest($1::text[], $2::int[]) AS d(variant_id, qty)
			WHERE v.variant_id = d.variant_id;
		`, ids, qty)
		if err != nil {
			return fmt.Errorf("failed to decrement inventory: %w", err)
		}
		if int(cmdTag.RowsAffected()) != len(ids) {
			return fmt.Errorf("inventory update touched %d variants, expected %d", cmdTag.RowsAffected(), len(ids))
		}

		batch := &pgx.Batch{}
		batch.Queue(`
			INSERT INTO orders (`+orderColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
		`,
			o.OrderID, o.OrderNumber, o.PartnerID, o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.ShippingAddress,
			o.Status, o.PaymentStatus, o.Subtotal, o.Discount, o.ShippingCost, o.Total, o.Notes, o.OrderDate,
			o.CreatedAt, o.CreatedBy, o.LastUpdatedAt, o.LastUpdatedBy,
		)
		itemQuery := `
			INSERT INTO order_items (order_item_id, order_id, product_id, variant_id, company_id, product_name, packing_volume, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
		`
		for _, it := range o.Items {
			batch.Queue(itemQuery, it.OrderItemID, o.OrderID, it.ProductID, it.VariantID, it.CompanyID,
				it.ProductName, it.PackingVolume, it.Quantity, it.UnitPrice, it.LineTotal)
		}

		br := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return mapPgError(err, "failed to save order %s", o.OrderID)
			}
		}
		return br.Close()
	})
}

func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	o, err := scanOrder(r.Pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = $1;`, orderID))
	if err != nil {
		return nil, mapPgError(err, "order %s", orderID)
	}
	orders := []domain.Order{*o}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *PgxOrderRepository) ListOrders(ctx context.Context, f domain.OrderFilter) ([]domain.Order, *string, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE ($1 = '' OR partner_id = $1)
			AND ($2 = '' OR status = $2)
			AND ($3::timestamptz IS NULL OR (created_at, order_id) < ($3, $4))
		ORDER BY created_at DESC, order_id DESC
		LIMIT $5;
	`
	// One extra row tells whether another page exists.
	rows, err := r.Pool.Query(ctx, query, f.PartnerID, string(f.Status), f.AfterCreatedAt, f.AfterID, f.Limit+1)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	rows.Close()

	var next *string
	if len(orders) > f.Limit {
		orders = orders[:f.Limit]
		last := orders[len(orders)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.OrderID)
		next = &token
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, nil, err
	}
	return orders, next, nil
}

func (r *PgxOrderRepository) attachItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	index := make(map[string]int, len(orders))
	for i, o := range orders {
		ids[i] = o.OrderID
		index[o.OrderID] = i
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT order_item_id, order_id, product_id, variant_id, company_id, product_name, packing_volume, quantity, unit_price, line_total
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, order_item_id;
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.OrderItemID, &it.OrderID, &it.ProductID, &it.VariantID, &it.CompanyID,
			&it.ProductName, &it.PackingVolume, &it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		i := index[it.OrderID]
		orders[i].Items = append(orders[i].Items, it)
	}
	return rows.Err()
}

func (r *PgxOrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus, userID string, now time.Time) error {
	return r.WithTx(ctx, r.txTimeout, func(ctx context.Context, tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `
			UPDATE orders SET status = $3, last_updated_at = $4, last_updated_by = $5
			WHERE order_id = $1 AND status = $2;
		`, orderID, from, to, now, userID)
		if err != nil {
			return fmt.Errorf("failed to update status of order %s: %w", orderID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("%w: order %s is no longer %s", apperrors.ErrConflict, orderID, from)
		}

		if to != domain.OrderCancelled {
			return nil
		}
		_, err = tx.Exec(ctx, `
			UPDATE product_variants v
			SET inventory = v.inventory + d.qty
			FROM (
				SELECT variant_id, SUM(quantity) AS qty FROM order_items WHERE order_id = $1 GROUP BY variant_id
			) AS d
			WHERE v.variant_id = d.variant_id;
		`, orderID)
		if err != nil {
			return fmt.Errorf("failed to restock cancelled order %s: %w", orderID, err)
		}

		// A cancelled order no longer earns anything; its revenue leaves the distribution base.
		if _, err := tx.Exec(ctx, `DELETE FROM revenue_transactions WHERE order_id = $1;`, orderID); err != nil {
			return fmt.Errorf("failed to reverse revenue of cancelled order %s: %w", orderID, err)
		}
		return nil
	})
}

func (r *PgxOrderRepository) MarkOrderPaid(ctx context.Context, orderID string, revenue []domain.RevenueTransaction, userID string, now time.Time) error {
	return r.WithTx(ctx, r.txTimeout, func(ctx context.Context, tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `
			UPDATE orders SET payment_status = 'paid', last_updated_at = $2, last_updated_by = $3
			WHERE order_id = $1 AND payment_status = 'unpaid' AND status <> 'cancelled';
		`, orderID, now, userID)
		if err != nil {
			return fmt.Errorf("failed to mark order %s paid: %w", orderID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("%w: order %s is already paid or cancelled", apperrors.ErrConflict, orderID)
		}
		for _, rev := range revenue {
			if err := insertRevenue(ctx, tx, rev); err != nil {
				return err
			}
		}
		return nil
	})
}
