package customer

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const customerColumns = `cust_num, cust_username, cust_password, cust_name, cust_email, cust_phone, cust_address`

func scanCustomer(row interface{ Scan(...any) error }) (Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.Username, &c.Password, &c.Name, &c.Email, &c.Phone, &c.Address)
	return c, err
}

func (r *PostgresRepository) List() ([]Customer, error) {
	rows, err := r.db.Query(`SELECT ` + customerColumns + ` FROM customers ORDER BY cust_num`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *PostgresRepository) GetByID(id int64) (Customer, error) {
	return r.getBy(`cust_num = $1`, id)
}

func (r *PostgresRepository) GetByUsername(username string) (Customer, error) {
	return r.getBy(`cust_username = $1`, username)
}

func (r *PostgresRepository) GetByEmail(email string) (Customer, error) {
	return r.getBy(`cust_email = $1`, email)
}

func (r *PostgresRepository) getBy(where string, arg any) (Customer, error) {
	row := r.db.QueryRow(`SELECT `+customerColumns+` FROM customers WHERE `+where, arg)
	c, err := scanCustomer(row)
	if err == sql.ErrNoRows {
		return Customer{}, ErrNotFound
	}
	return c, err
}

func (r *PostgresRepository) Create(c Customer) (Customer, error) {
	err := r.db.QueryRow(`INSERT INTO customers (cust_username, cust_password, cust_name, cust_email, cust_phone, cust_address)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING cust_num`,
		c.Username, c.Password, c.Name, c.Email, c.Phone, c.Address).Scan(&c.ID)
	if err != nil {
		return Customer{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Update(id int64, c Customer) (Customer, error) {
	res, err := r.db.Exec(`UPDATE customers SET cust_name = $1, cust_email = $2, cust_phone = $3, cust_address = $4
        WHERE cust_num = $5`,
		c.Name, c.Email, c.Phone, c.Address, id)
	if err != nil {
		return Customer{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Customer{}, ErrNotFound
	}
	c.ID = id
	return c, nil
}

func (r *PostgresRepository) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM customers WHERE cust_num = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
