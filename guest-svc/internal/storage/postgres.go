package storage

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"resort-concierge/guest-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const orderNumberConstraint = "orders_order_number_key"

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

const venueColumns = `id, name, type, COALESCE(description, ''), COALESCE(location, ''), COALESCE(phone, ''),
	COALESCE(image_url, ''), COALESCE(opening_hours, ''), is_active, category_id, created_at`

func scanVenue(row interface{ Scan(...any) error }) (domain.Venue, error) {
	var v domain.Venue
	var category uuid.NullUUID
	err := row.Scan(&v.ID, &v.Name, &v.Type, &v.Description, &v.Location, &v.Phone,
		&v.ImageURL, &v.OpeningHours, &v.IsActive, &category, &v.CreatedAt)
	if category.Valid {
		v.CategoryID = &category.UUID
	}
	return v, err
}

func (r *PostgresRepository) ListVenues(ctx context.Context, filter domain.VenueFilter) ([]domain.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE is_active = true`
	var args []any
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		query += " AND type = $" + strconv.Itoa(len(args))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += " AND category_id = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY name"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list venues")
	}
	defer rows.Close()

	venues := []domain.Venue{}
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan venue")
		}
		venues = append(venues, v)
	}
	return venues, errors.Wrap(rows.Err(), "iterate venues")
}

func (r *PostgresRepository) GetVenue(ctx context.Context, id uuid.UUID) (*domain.Venue, error) {
	v, err := scanVenue(r.DB.QueryRowContext(ctx,
		`SELECT `+venueColumns+` FROM venues WHERE id = $1 AND is_active = true`, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrVenueNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get venue")
	}
	return &v, nil
}

const menuItemColumns = `id, venue_id, name, COALESCE(description, ''), price, COALESCE(category, ''),
	COALESCE(image_url, ''), is_available, created_at`

func scanMenuItem(row interface{ Scan(...any) error }) (domain.MenuItem, error) {
	var m domain.MenuItem
	err := row.Scan(&m.ID, &m.VenueID, &m.Name, &m.Description, &m.Price, &m.Category,
		&m.ImageURL, &m.IsAvailable, &m.CreatedAt)
	return m, err
}

func (r *PostgresRepository) queryMenuItems(ctx context.Context, query string, args ...any) ([]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list menu items")
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan menu item")
		}
		items = append(items, m)
	}
	return items, errors.Wrap(rows.Err(), "iterate menu items")
}

func (r *PostgresRepository) ListMenuItems(ctx context.Context, filter domain.MenuItemFilter) ([]domain.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE is_available = true`
	var args []any
	if filter.VenueID != nil {
		args = append(args, *filter.VenueID)
		query += " AND venue_id = $" + strconv.Itoa(len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += " AND category = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY category, name"
	return r.queryMenuItems(ctx, query, args...)
}

func (r *PostgresRepository) GetMenuItem(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error) {
	m, err := scanMenuItem(r.DB.QueryRowContext(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrMenuItemNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get menu item")
	}
	return &m, nil
}

// FindAvailableItems returns the subset of ids that belong to the venue and
// are currently sellable.
func (r *PostgresRepository) FindAvailableItems(ctx context.Context, venueID uuid.UUID, ids []uuid.UUID) ([]domain.MenuItem, error) {
	return r.queryMenuItems(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items
		WHERE venue_id = $1 AND is_available = true AND id = ANY($2)`,
		venueID, pq.Array(uuidStrings(ids)))
}

func (r *PostgresRepository) ListServiceCategories(ctx context.Context) ([]domain.ServiceCategory, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, slug, COALESCE(description, ''), COALESCE(icon, ''), sort_order
		FROM service_categories
		ORDER BY sort_order, name`)
	if err != nil {
		return nil, errors.Wrap(err, "list service categories")
	}
	defer rows.Close()

	categories := []domain.ServiceCategory{}
	for rows.Next() {
		var c domain.ServiceCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Icon, &c.SortOrder); err != nil {
			return nil, errors.Wrap(err, "scan service category")
		}
		categories = append(categories, c)
	}
	return categories, errors.Wrap(rows.Err(), "iterate service categories")
}

// CreateOrder writes the order and its lines in one transaction.
// ErrDuplicateOrderNumber is returned when the order number is taken.
func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin order tx")
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (id, order_number, profile_id, venue_id, total_amount, status, delivery_address, delivery_instructions)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''))
		RETURNING created_at, updated_at
	`, order.ID, order.OrderNumber, order.ProfileID, order.VenueID, order.TotalAmount, string(order.Status),
		order.DeliveryAddress, order.DeliveryInstructions).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == orderNumberConstraint {
			return domain.ErrDuplicateOrderNumber
		}
		return errors.Wrap(err, "insert order")
	}

	for i, item := range order.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, line_no, menu_item_id, quantity, price, notes)
			VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
		`, item.ID, order.ID, i, item.MenuItemID, item.Quantity, item.Price, item.Notes); err != nil {
			return errors.Wrap(err, "insert order item")
		}
	}

	return errors.Wrap(tx.Commit(), "commit order")
}

const orderColumns = `o.id, o.order_number, o.profile_id, o.venue_id, COALESCE(v.name, ''), o.total_amount, o.status,
	COALESCE(o.delivery_address, ''), COALESCE(o.delivery_instructions, ''), o.created_at, o.updated_at`

func scanOrder(row interface{ Scan(...any) error }) (domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.ProfileID, &o.VenueID, &o.VenueName, &o.TotalAmount, &o.Status,
		&o.DeliveryAddress, &o.DeliveryInstructions, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func (r *PostgresRepository) ListOrders(ctx context.Context, profileID uuid.UUID, status domain.OrderStatus) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders o
		LEFT JOIN venues v ON v.id = o.venue_id
		WHERE o.profile_id = $1`
	args := []any{profileID}
	if status != "" {
		args = append(args, string(status))
		query += " AND o.status = $2"
	}
	query += " ORDER BY o.created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan order")
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate orders")
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]uuid.UUID, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
	}
	items, err := r.orderItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
		if orders[i].Items == nil {
			orders[i].Items = []domain.OrderItem{}
		}
	}
	return orders, nil
}

func (r *PostgresRepository) GetOrder(ctx context.Context, profileID uuid.UUID, orderNumber string) (*domain.Order, error) {
	o, err := scanOrder(r.DB.QueryRowContext(ctx, `SELECT `+orderColumns+`
		FROM orders o
		LEFT JOIN venues v ON v.id = o.venue_id
		WHERE o.profile_id = $1 AND o.order_number = $2`, profileID, orderNumber))
	if err == sql.ErrNoRows {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get order")
	}

	items, err := r.orderItems(ctx, []uuid.UUID{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	if o.Items == nil {
		o.Items = []domain.OrderItem{}
	}
	return &o, nil
}

func (r *PostgresRepository) orderItems(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]domain.OrderItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.menu_item_id, COALESCE(mi.name, ''), oi.quantity, oi.price, COALESCE(oi.notes, '')
		FROM order_items oi
		LEFT JOIN menu_items mi ON mi.id = oi.menu_item_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.line_no`, pq.Array(uuidStrings(orderIDs)))
	if err != nil {
		return nil, errors.Wrap(err, "list order items")
	}
	defer rows.Close()

	byOrder := make(map[uuid.UUID][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var item domain.OrderItem
		var orderID uuid.UUID
		if err := rows.Scan(&item.ID, &orderID, &item.MenuItemID, &item.MenuItemName, &item.Quantity, &item.Price, &item.Notes); err != nil {
			return nil, errors.Wrap(err, "scan order item")
		}
		byOrder[orderID] = append(byOrder[orderID], item)
	}
	return byOrder, errors.Wrap(rows.Err(), "iterate order items")
}

func (r *PostgresRepository) CreateNotification(ctx context.Context, n *domain.Notification) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO notifications (id, profile_id, title, message, type, link)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		RETURNING is_read, created_at
	`, n.ID, n.ProfileID, n.Title, n.Message, string(n.Type), n.Link).Scan(&n.IsRead, &n.CreatedAt)
	return errors.Wrap(err, "insert notification")
}

func (r *PostgresRepository) ListNotifications(ctx context.Context, profileID uuid.UUID, unreadOnly bool, limit int) ([]domain.Notification, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, profile_id, title, message, type, COALESCE(link, ''), is_read, created_at
		FROM notifications
		WHERE profile_id = $1`)
	if unreadOnly {
		sb.WriteString(" AND is_read = false")
	}
	sb.WriteString(" ORDER BY created_at DESC LIMIT $2")

	rows, err := r.DB.QueryContext(ctx, sb.String(), profileID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list notifications")
	}
	defer rows.Close()

	notifications := []domain.Notification{}
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.ProfileID, &n.Title, &n.Message, &n.Type, &n.Link, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan notification")
		}
		notifications = append(notifications, n)
	}
	return notifications, errors.Wrap(rows.Err(), "iterate notifications")
}

func (r *PostgresRepository) MarkNotificationRead(ctx context.Context, profileID, id uuid.UUID) error {
	result, err := r.DB.ExecContext(ctx,
		"UPDATE notifications SET is_read = true WHERE id = $1 AND profile_id = $2", id, profileID)
	if err != nil {
		return errors.Wrap(err, "mark notification read")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "mark notification read")
	}
	if n == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *PostgresRepository) MarkAllNotificationsRead(ctx context.Context, profileID uuid.UUID) (int64, error) {
	result, err := r.DB.ExecContext(ctx,
		"UPDATE notifications SET is_read = true WHERE profile_id = $1 AND is_read = false", profileID)
	if err != nil {
		return 0, errors.Wrap(err, "mark all notifications read")
	}
	n, err := result.RowsAffected()
	return n, errors.Wrap(err, "mark all notifications read")
}

func (r *PostgresRepository) CountUnreadNotifications(ctx context.Context, profileID uuid.UUID) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notifications WHERE profile_id = $1 AND is_read = false", profileID).Scan(&count)
	return count, errors.Wrap(err, "count unread notifications")
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
