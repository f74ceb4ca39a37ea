package order

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const orderColumns = `order_id, order_number, cust_num, total_amount, order_status, recipient_name, recipient_phone, shipping_address, order_note, created_date, updated_date`

// Create inserts the order and its items and clears the source cart in one
// transaction; a failure anywhere rolls the whole thing back.
func (r *PostgresRepository) Create(o *Order, clearCartID int64) (*Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	saved := *o
	err = tx.QueryRow(`INSERT INTO orders (order_number, cust_num, total_amount, order_status, recipient_name, recipient_phone, shipping_address, order_note, created_date, updated_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING order_id`,
		o.Number, o.CustomerID, o.TotalAmount, o.Status, o.RecipientName, o.RecipientPhone,
		o.ShippingAddress, o.Note, o.CreatedAt, o.UpdatedAt).Scan(&saved.ID)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	saved.Items = make([]Item, len(o.Items))
	for i, it := range o.Items {
		it.OrderID = saved.ID
		err = tx.QueryRow(`INSERT INTO order_items (order_id, prod_num, product_name, quantity, unit_price)
            VALUES ($1,$2,$3,$4,$5)
            RETURNING order_item_id`,
			it.OrderID, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice).Scan(&it.ID)
		if err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}
		saved.Items[i] = it
	}

	if _, err := tx.Exec(`DELETE FROM cart_items WHERE cart_id = $1`, clearCartID); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}
	if _, err := tx.Exec(`UPDATE carts SET updated_date = now() WHERE cart_id = $1`, clearCartID); err != nil {
		return nil, fmt.Errorf("touch cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &saved, nil
}

func (r *PostgresRepository) GetByID(id int64) (*Order, error) {
	return r.getBy(`order_id = $1`, id)
}

func (r *PostgresRepository) GetByNumber(number string) (*Order, error) {
	return r.getBy(`order_number = $1`, number)
}

func (r *PostgresRepository) getBy(where string, arg any) (*Order, error) {
	row := r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE `+where, arg)
	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.items(o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *PostgresRepository) items(orderID int64) ([]Item, error) {
	rows, err := r.db.Query(`SELECT order_item_id, order_id, prod_num, product_name, quantity, unit_price
        FROM order_items WHERE order_id = $1 ORDER BY order_item_id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) List() ([]Order, error) {
	return r.listWhere(``)
}

func (r *PostgresRepository) ListByCustomer(customerID int64) ([]Order, error) {
	return r.listWhere(`WHERE cust_num = $1`, customerID)
}

func (r *PostgresRepository) ListByStatus(status Status) ([]Order, error) {
	return r.listWhere(`WHERE order_status = $1`, status)
}

func (r *PostgresRepository) listWhere(where string, args ...any) ([]Order, error) {
	rows, err := r.db.Query(`SELECT `+orderColumns+` FROM orders `+where+` ORDER BY created_date DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// ListByIDs returns orders matching the given ids, ordered the way the ids
// argument is. An empty slice returns immediately without a query.
func (r *PostgresRepository) ListByIDs(ids []int64) ([]Order, error) {
	if len(ids) == 0 {
		return []Order{}, nil
	}

	rows, err := r.db.Query(`SELECT `+orderColumns+` FROM orders
        WHERE order_id = ANY($1::bigint[])
        ORDER BY array_position($1::bigint[], order_id)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *PostgresRepository) UpdateStatus(id int64, status Status, updatedAt time.Time) error {
	res, err := r.db.Exec(`UPDATE orders SET order_status = $1, updated_date = $2 WHERE order_id = $3`,
		status, updatedAt, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanOrder(row interface{ Scan(...any) error }) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.Number, &o.CustomerID, &o.TotalAmount, &o.Status,
		&o.RecipientName, &o.RecipientPhone, &o.ShippingAddress, &o.Note, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func collect(rows *sql.Rows) ([]Order, error) {
	orders := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
