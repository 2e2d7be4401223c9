package dto

import (
	"github.com/freshmart/supermarket-service/internal/domain"
)

// CreateProductRequest payload for new products.
type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	StoreID     int64   `json:"store_id"`
}

// UpdateProductRequest payload for partial product updates.
type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	StoreID     *int64   `json:"store_id,omitempty"`
}

// ProductResponse is the transport view of a product.
type ProductResponse struct {
	ID          int64                  `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Category    domain.ProductCategory `json:"category"`
	Price       float64                `json:"price"`
	StoreID     int64                  `json:"store_id"`
}

// NewProductResponse maps a domain product.
func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Category:    product.Category,
		Price:       product.Price,
		StoreID:     product.StoreID,
	}
}

// NewProductResponses maps a slice of domain products.
func NewProductResponses(products []*domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		out = append(out, NewProductResponse(product))
	}
	return out
}
