package dto

import (
	"github.com/freshmart/supermarket-service/internal/service"
)

// CreateStoreRequest payload for new stores.
type CreateStoreRequest struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	ManagerID int64  `json:"manager_id"`
}

// UpdateStoreRequest payload for partial store updates.
type UpdateStoreRequest struct {
	Name      *string `json:"name,omitempty"`
	Location  *string `json:"location,omitempty"`
	ManagerID *int64  `json:"manager_id,omitempty"`
}

// StoreResponse is the transport view of a store.
type StoreResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	ManagerID   int64  `json:"manager_id"`
	ManagerName string `json:"manager_name"`
}

// NewStoreResponse maps a store view.
func NewStoreResponse(view *service.StoreView) StoreResponse {
	return StoreResponse{
		ID:          view.Store.ID,
		Name:        view.Store.Name,
		Location:    view.Store.Location,
		ManagerID:   view.Store.ManagerID,
		ManagerName: view.ManagerName,
	}
}

// NewStoreResponses maps a slice of store views.
func NewStoreResponses(views []*service.StoreView) []StoreResponse {
	out := make([]StoreResponse, 0, len(views))
	for _, view := range views {
		out = append(out, NewStoreResponse(view))
	}
	return out
}
