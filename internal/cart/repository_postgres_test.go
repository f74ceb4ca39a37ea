package cart

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreateForCustomerUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO carts").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id", "cust_num", "created_date", "updated_date"}).
			AddRow(3, 1, now, now))

	c, err := repo.CreateForCustomer(1)
	if err != nil {
		t.Fatalf("CreateForCustomer: %v", err)
	}
	if c.ID != 3 || c.CustomerID != 1 {
		t.Fatalf("unexpected cart %+v", c)
	}

	// running it again for the same customer returns the same row
	mock.ExpectQuery("INSERT INTO carts").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id", "cust_num", "created_date", "updated_date"}).
			AddRow(3, 1, now, now))

	again, err := repo.CreateForCustomer(1)
	if err != nil {
		t.Fatalf("CreateForCustomer: %v", err)
	}
	if again.ID != c.ID {
		t.Fatalf("upsert produced a second cart: %d vs %d", again.ID, c.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByCustomerNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT .* FROM carts").WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id", "cust_num", "created_date", "updated_date"}))

	if _, err := repo.GetByCustomer(99); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClearTouchesCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("DELETE FROM cart_items").WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE carts").WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Clear(3); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateItemQuantityMissingItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("UPDATE cart_items").WithArgs(5, int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id"}))

	if err := repo.UpdateItemQuantity(404, 5); err != ErrItemNotFound {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}
