package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/freshmart/supermarket-service/internal/api/dto"
	"github.com/freshmart/supermarket-service/internal/domain"
	"github.com/freshmart/supermarket-service/internal/service"
	apperrors "github.com/freshmart/supermarket-service/pkg/util"
)

// StoresHandler exposes store CRUD endpoints.
type StoresHandler struct {
	stores *service.StoreService
}

// NewStoresHandler constructs handler.
func NewStoresHandler(storeService *service.StoreService) *StoresHandler {
	return &StoresHandler{stores: storeService}
}

// Create handles POST /api/stores.
func (h *StoresHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.ManagerID == 0 {
		return apperrors.NewValidationError("name and manager_id required", nil)
	}

	view, err := h.stores.Create(c.Context(), &domain.Store{
		Name:      req.Name,
		Location:  req.Location,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewStoreResponse(view)})
}

// List handles GET /api/stores.
func (h *StoresHandler) List(c *fiber.Ctx) error {
	views, err := h.stores.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStoreResponses(views)})
}

// GetByID handles GET /api/stores/:id.
func (h *StoresHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	view, err := h.stores.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStoreResponse(view)})
}

// ListByManager handles GET /api/stores/by-manager/:managerId.
func (h *StoresHandler) ListByManager(c *fiber.Ctx) error {
	managerID, err := parseID(c, "managerId")
	if err != nil {
		return err
	}
	views, err := h.stores.ListByManagerID(c.Context(), managerID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStoreResponses(views)})
}

// Update handles PUT /api/stores/:id.
func (h *StoresHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	view, err := h.stores.Update(c.Context(), id, req.Name, req.Location, req.ManagerID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStoreResponse(view)})
}

// Delete handles DELETE /api/stores/:id.
func (h *StoresHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.stores.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
