package catalog

import (
	"github.com/coconina/storefront/app/models"
	"github.com/coconina/storefront/pkg/collection"
)

// AllFilter selects every category.
const AllFilter = "all"

// Products returns every fixture product in catalog order.
func Products() []models.Product {
	return clone(products)
}

// Categories returns the four category records in catalog order.
func Categories() []models.Category {
	out := make([]models.Category, len(categories))
	copy(out, categories)
	return out
}

// ByCategory filters products by category slug. An empty filter or "all"
// returns the full list unchanged.
func ByCategory(category string) []models.Product {
	return FilterByCategory(products, category)
}

// ByID returns the fixture with the given id.
func ByID(id string) (models.Product, bool) {
	p, ok := collection.First(products, func(p models.Product) bool { return p.ID == id })
	if !ok {
		return models.Product{}, false
	}
	return p.Clone(), true
}

// CategoryBySlug returns the category record for slug.
func CategoryBySlug(slug string) (models.Category, bool) {
	return collection.First(categories, func(c models.Category) bool { return string(c.Slug) == slug })
}

// FilterByCategory applies the category filter to any product list, fixture
// or remote.
func FilterByCategory(list []models.Product, category string) []models.Product {
	if category == "" || category == AllFilter {
		return clone(list)
	}
	matched := collection.Filter(list, func(p models.Product) bool { return string(p.Category) == category })
	return clone(matched)
}

func clone(list []models.Product) []models.Product {
	return collection.Map(list, models.Product.Clone)
}
