package storage

import (
	"context"
	"database/sql"
	"time"

	"resort-concierge/analytics-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) MenuItemNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM menu_items WHERE id = ANY($1)`, pq.Array(raw))
	if err != nil {
		return nil, errors.Wrap(err, "load menu item names")
	}
	defer rows.Close()

	names := make(map[uuid.UUID]string, len(ids))
	for rows.Next() {
		var id uuid.UUID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, errors.Wrap(err, "scan menu item name")
		}
		names[id] = name
	}
	return names, errors.Wrap(rows.Err(), "iterate menu item names")
}

func (r *PostgresRepository) TopFromOrders(ctx context.Context, venueID uuid.UUID, since time.Time, limit int) ([]domain.PopularItem, error) {
	var sinceArg any
	if !since.IsZero() {
		sinceArg = since
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT oi.menu_item_id, mi.name, SUM(oi.quantity) AS quantity
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN menu_items mi ON mi.id = oi.menu_item_id
		WHERE o.venue_id = $1
			AND o.status <> 'CANCELLED'
			AND ($2::timestamptz IS NULL OR o.created_at >= $2)
		GROUP BY oi.menu_item_id, mi.name
		ORDER BY quantity DESC, mi.name
		LIMIT $3
	`, venueID, sinceArg, limit)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate popular items")
	}
	defer rows.Close()

	items := []domain.PopularItem{}
	for rows.Next() {
		var item domain.PopularItem
		if err := rows.Scan(&item.MenuItemID, &item.Name, &item.Quantity); err != nil {
			return nil, errors.Wrap(err, "scan popular item")
		}
		items = append(items, item)
	}
	return items, errors.Wrap(rows.Err(), "iterate popular items")
}
