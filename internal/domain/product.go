package domain

import (
	"fmt"
	"strings"
	"time"
)

// ProductCategory enumerates supported product categories.
type ProductCategory string

const (
	CategoryGrocery   ProductCategory = "GROCERY"
	CategoryProduce   ProductCategory = "PRODUCE"
	CategoryDairy     ProductCategory = "DAIRY"
	CategoryBakery    ProductCategory = "BAKERY"
	CategoryBeverage  ProductCategory = "BEVERAGE"
	CategoryHousehold ProductCategory = "HOUSEHOLD"
)

// ParseProductCategory normalizes and validates a category string.
func ParseProductCategory(s string) (ProductCategory, error) {
	switch ProductCategory(strings.ToUpper(strings.TrimSpace(s))) {
	case CategoryGrocery:
		return CategoryGrocery, nil
	case CategoryProduce:
		return CategoryProduce, nil
	case CategoryDairy:
		return CategoryDairy, nil
	case CategoryBakery:
		return CategoryBakery, nil
	case CategoryBeverage:
		return CategoryBeverage, nil
	case CategoryHousehold:
		return CategoryHousehold, nil
	default:
		return "", fmt.Errorf("unknown product category %q", s)
	}
}

// Product belongs to exactly one store.
type Product struct {
	ID          int64
	Name        string
	Description string
	Category    ProductCategory
	Price       float64
	StoreID     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
