package product

import (
	"sort"
	"strings"
)

// Service orchestrates catalog reads and admin-side mutations.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Product, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id int64) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(p Product) (Product, error) {
	return s.repo.Create(p)
}

func (s *Service) Update(id int64, p Product) (Product, error) {
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id int64) error {
	return s.repo.Delete(id)
}

// Search filters the catalog by an optional case-insensitive name keyword
// and an optional exact type, then applies one of the four sort keys.
// An unknown sort key leaves the repository order untouched.
func (s *Service) Search(keyword, prodType, sortKey string) ([]Product, error) {
	var (
		products []Product
		err      error
	)

	keyword = strings.TrimSpace(keyword)
	prodType = strings.TrimSpace(prodType)

	switch {
	case keyword != "" && prodType != "":
		products, err = s.repo.SearchByKeywordAndType(keyword, prodType)
	case keyword != "":
		products, err = s.repo.SearchByKeyword(keyword)
	case prodType != "":
		products, err = s.repo.FindByType(prodType)
	default:
		products, err = s.repo.List()
	}
	if err != nil {
		return nil, err
	}

	return sortProducts(products, sortKey), nil
}

// ListSorted returns the whole catalog ordered by the given sort key.
func (s *Service) ListSorted(sortKey string) ([]Product, error) {
	products, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	return sortProducts(products, sortKey), nil
}

// Types returns the distinct product types, ascending.
func (s *Service) Types() ([]string, error) {
	return s.repo.Types()
}

func sortProducts(products []Product, key string) []Product {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[j].Price.LessThan(products[i].Price)
		})
	case SortNameAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Name < products[j].Name
		})
	case SortNameDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[j].Name < products[i].Name
		})
	}
	return products
}
