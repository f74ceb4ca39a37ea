package cart

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByCustomer(customerID int64) (Cart, error) {
	var c Cart
	err := r.db.QueryRow(`SELECT cart_id, cust_num, created_date, updated_date
        FROM carts WHERE cust_num = $1`, customerID).
		Scan(&c.ID, &c.CustomerID, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return Cart{}, ErrNotFound
	}
	return c, err
}

func (r *PostgresRepository) CreateForCustomer(customerID int64) (Cart, error) {
	// ON CONFLICT keeps the one-cart-per-customer invariant under races
	var c Cart
	err := r.db.QueryRow(`INSERT INTO carts (cust_num)
        VALUES ($1)
        ON CONFLICT (cust_num) DO UPDATE SET cust_num = EXCLUDED.cust_num
        RETURNING cart_id, cust_num, created_date, updated_date`, customerID).
		Scan(&c.ID, &c.CustomerID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Items(cartID int64) ([]Item, error) {
	rows, err := r.db.Query(`SELECT cart_item_id, cart_id, prod_num, quantity, unit_price
        FROM cart_items WHERE cart_id = $1 ORDER BY cart_item_id`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) GetItem(itemID int64) (Item, error) {
	var it Item
	err := r.db.QueryRow(`SELECT cart_item_id, cart_id, prod_num, quantity, unit_price
        FROM cart_items WHERE cart_item_id = $1`, itemID).
		Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.UnitPrice)
	if err == sql.ErrNoRows {
		return Item{}, ErrItemNotFound
	}
	return it, err
}

func (r *PostgresRepository) AddItem(item Item) (Item, error) {
	err := r.db.QueryRow(`INSERT INTO cart_items (cart_id, prod_num, quantity, unit_price)
        VALUES ($1,$2,$3,$4)
        RETURNING cart_item_id`,
		item.CartID, item.ProductID, item.Quantity, item.UnitPrice).Scan(&item.ID)
	if err != nil {
		return Item{}, err
	}
	return item, r.touch(item.CartID)
}

func (r *PostgresRepository) UpdateItemQuantity(itemID int64, quantity int) error {
	var cartID int64
	err := r.db.QueryRow(`UPDATE cart_items SET quantity = $1 WHERE cart_item_id = $2
        RETURNING cart_id`, quantity, itemID).Scan(&cartID)
	if err == sql.ErrNoRows {
		return ErrItemNotFound
	}
	if err != nil {
		return err
	}
	return r.touch(cartID)
}

func (r *PostgresRepository) RemoveItem(itemID int64) error {
	var cartID int64
	err := r.db.QueryRow(`DELETE FROM cart_items WHERE cart_item_id = $1
        RETURNING cart_id`, itemID).Scan(&cartID)
	if err == sql.ErrNoRows {
		return ErrItemNotFound
	}
	if err != nil {
		return err
	}
	return r.touch(cartID)
}

func (r *PostgresRepository) Clear(cartID int64) error {
	if _, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return err
	}
	return r.touch(cartID)
}

func (r *PostgresRepository) touch(cartID int64) error {
	_, err := r.db.Exec(`UPDATE carts SET updated_date = now() WHERE cart_id = $1`, cartID)
	return err
}
