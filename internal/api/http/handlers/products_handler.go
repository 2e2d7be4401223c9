package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/freshmart/supermarket-service/internal/api/dto"
	"github.com/freshmart/supermarket-service/internal/domain"
	"github.com/freshmart/supermarket-service/internal/service"
	apperrors "github.com/freshmart/supermarket-service/pkg/util"
)

// ProductsHandler exposes product CRUD and lookup endpoints.
type ProductsHandler struct {
	products *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(productService *service.ProductService) *ProductsHandler {
	return &ProductsHandler{products: productService}
}

// Create handles POST /api/products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Category == "" || req.StoreID == 0 {
		return apperrors.NewValidationError("name, category and store_id required", nil)
	}
	category, err := domain.ParseProductCategory(req.Category)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	product, err := h.products.Create(c.Context(), &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    category,
		Price:       req.Price,
		StoreID:     req.StoreID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}

// List handles GET /api/products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	products, err := h.products.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponses(products)})
}

// GetByID handles GET /api/products/:id.
func (h *ProductsHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	product, err := h.products.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}

// ListByCategory handles GET /api/products/by-category?category=DAIRY.
func (h *ProductsHandler) ListByCategory(c *fiber.Ctx) error {
	category := c.Query("category")
	if category == "" {
		return apperrors.NewValidationError("category query parameter required", nil)
	}
	products, err := h.products.ListByCategory(c.Context(), category)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponses(products)})
}

// ListByStore handles GET /api/products/by-store/:storeId.
func (h *ProductsHandler) ListByStore(c *fiber.Ctx) error {
	storeID, err := parseID(c, "storeId")
	if err != nil {
		return err
	}
	products, err := h.products.ListByStoreID(c.Context(), storeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponses(products)})
}

// Search handles GET /api/products/search?name=milk.
func (h *ProductsHandler) Search(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return apperrors.NewValidationError("name query parameter required", nil)
	}
	products, err := h.products.SearchByName(c.Context(), name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponses(products)})
}

// ListByCategoryAndStore handles GET /api/products/by-category-and-store.
func (h *ProductsHandler) ListByCategoryAndStore(c *fiber.Ctx) error {
	category := c.Query("category")
	if category == "" {
		return apperrors.NewValidationError("category query parameter required", nil)
	}
	storeID := c.QueryInt("store_id")
	if storeID == 0 {
		return apperrors.NewValidationError("store_id query parameter required", nil)
	}
	products, err := h.products.ListByCategoryAndStoreID(c.Context(), category, int64(storeID))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponses(products)})
}

// Update handles PUT /api/products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	product, err := h.products.Update(c.Context(), id, service.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		StoreID:     req.StoreID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}

// Delete handles DELETE /api/products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.products.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
