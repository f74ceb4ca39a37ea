package product

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const productColumns = `prod_num, prod_name, prod_type, prod_price, prod_description, image_ref`

func scanProduct(row interface{ Scan(...any) error }) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Type, &p.Price, &p.Description, &p.ImageRef)
	return p, err
}

func (r *PostgresRepository) List() ([]Product, error) {
	rows, err := r.db.Query(`SELECT ` + productColumns + ` FROM products ORDER BY prod_num`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *PostgresRepository) GetByID(id int64) (Product, error) {
	row := r.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE prod_num = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	err := r.db.QueryRow(`INSERT INTO products (prod_name, prod_type, prod_price, prod_description, image_ref)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING prod_num`,
		p.Name, p.Type, p.Price, p.Description, p.ImageRef).Scan(&p.ID)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id int64, p Product) (Product, error) {
	res, err := r.db.Exec(`UPDATE products SET prod_name = $1, prod_type = $2, prod_price = $3, prod_description = $4, image_ref = $5
        WHERE prod_num = $6`,
		p.Name, p.Type, p.Price, p.Description, p.ImageRef, id)
	if err != nil {
		return Product{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Product{}, ErrNotFound
	}
	p.ID = id
	return p, nil
}

func (r *PostgresRepository) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE prod_num = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SearchByKeyword(keyword string) ([]Product, error) {
	rows, err := r.db.Query(`SELECT `+productColumns+` FROM products
        WHERE LOWER(prod_name) LIKE LOWER($1) ORDER BY prod_num`, "%"+keyword+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *PostgresRepository) FindByType(prodType string) ([]Product, error) {
	rows, err := r.db.Query(`SELECT `+productColumns+` FROM products
        WHERE prod_type = $1 ORDER BY prod_num`, prodType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *PostgresRepository) SearchByKeywordAndType(keyword, prodType string) ([]Product, error) {
	rows, err := r.db.Query(`SELECT `+productColumns+` FROM products
        WHERE LOWER(prod_name) LIKE LOWER($1) AND prod_type = $2 ORDER BY prod_num`,
		"%"+keyword+"%", prodType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *PostgresRepository) Types() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT prod_type FROM products WHERE prod_type <> '' ORDER BY prod_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]string, 0)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func collect(rows *sql.Rows) ([]Product, error) {
	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
