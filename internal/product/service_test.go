package product

import (
	"testing"

	"github.com/shopspring/decimal"
)

func seedCatalog() []Product {
	return []Product{
		{ID: 1, Name: "Ceramic Mug", Type: "kitchen", Price: decimal.RequireFromString("100.00")},
		{ID: 2, Name: "Tea Towel", Type: "kitchen", Price: decimal.RequireFromString("50.00")},
		{ID: 3, Name: "Desk Lamp", Type: "office", Price: decimal.RequireFromString("350.00")},
		{ID: 4, Name: "Mug Warmer", Type: "office", Price: decimal.RequireFromString("220.00")},
	}
}

func names(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func equalNames(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSearchByKeyword(t *testing.T) {
	s := NewService(NewInMemoryRepository(seedCatalog()))

	products, err := s.Search("mug", "", "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := names(products); !equalNames(got, []string{"Ceramic Mug", "Mug Warmer"}) {
		t.Fatalf("keyword match = %v", got)
	}

	// keyword matching ignores case
	products, err = s.Search("MUG", "", "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("uppercase keyword matched %d products", len(products))
	}
}

func TestSearchByType(t *testing.T) {
	s := NewService(NewInMemoryRepository(seedCatalog()))

	products, err := s.Search("", "office", "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := names(products); !equalNames(got, []string{"Desk Lamp", "Mug Warmer"}) {
		t.Fatalf("type match = %v", got)
	}

	// type matching is exact
	products, err = s.Search("", "OFFICE", "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("uppercase type matched %d products", len(products))
	}
}

func TestSearchByKeywordAndType(t *testing.T) {
	s := NewService(NewInMemoryRepository(seedCatalog()))

	products, err := s.Search("mug", "kitchen", "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := names(products); !equalNames(got, []string{"Ceramic Mug"}) {
		t.Fatalf("keyword+type match = %v", got)
	}
}

func TestSearchSortKeys(t *testing.T) {
	cases := []struct {
		sortKey string
		want    []string
	}{
		{SortPriceAsc, []string{"Tea Towel", "Ceramic Mug", "Mug Warmer", "Desk Lamp"}},
		{SortPriceDesc, []string{"Desk Lamp", "Mug Warmer", "Ceramic Mug", "Tea Towel"}},
		{SortNameAsc, []string{"Ceramic Mug", "Desk Lamp", "Mug Warmer", "Tea Towel"}},
		{SortNameDesc, []string{"Tea Towel", "Mug Warmer", "Desk Lamp", "Ceramic Mug"}},
		// an unknown key keeps the repository order
		{"bogus", []string{"Ceramic Mug", "Tea Towel", "Desk Lamp", "Mug Warmer"}},
	}

	for _, tc := range cases {
		s := NewService(NewInMemoryRepository(seedCatalog()))
		products, err := s.Search("", "", tc.sortKey)
		if err != nil {
			t.Fatalf("Search(%q): %v", tc.sortKey, err)
		}
		if got := names(products); !equalNames(got, tc.want) {
			t.Errorf("sort %q = %v, want %v", tc.sortKey, got, tc.want)
		}
	}
}

func TestSearchTrimsParams(t *testing.T) {
	s := NewService(NewInMemoryRepository(seedCatalog()))

	products, err := s.Search("  ", "  ", "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(products) != 4 {
		t.Fatalf("blank params should list everything, got %d", len(products))
	}
}

func TestTypes(t *testing.T) {
	s := NewService(NewInMemoryRepository(seedCatalog()))

	types, err := s.Types()
	if err != nil {
		t.Fatalf("Types: %v", err)
	}
	if !equalNames(types, []string{"kitchen", "office"}) {
		t.Fatalf("Types = %v", types)
	}
}

func TestCRUDRoundTrip(t *testing.T) {
	s := NewService(NewInMemoryRepository(nil))

	created, err := s.Create(Product{Name: "Notebook", Type: "office", Price: decimal.RequireFromString("80.00")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("Create did not assign an id")
	}

	created.Price = decimal.RequireFromString("90.00")
	updated, err := s.Update(created.ID, created)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.Price.Equal(decimal.RequireFromString("90.00")) {
		t.Fatalf("Update price = %s", updated.Price)
	}

	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.GetByID(created.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
