package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/freshmart/supermarket-service/internal/domain"
	"github.com/freshmart/supermarket-service/internal/events"
	"github.com/freshmart/supermarket-service/internal/repository"
	apperrors "github.com/freshmart/supermarket-service/pkg/util"
)

// StoreView is a store joined with its manager's name for responses.
type StoreView struct {
	Store       *domain.Store
	ManagerName string
}

// StoreService covers store CRUD with manager resolution.
type StoreService struct {
	stores     repository.StoreRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewStoreService builds the service.
func NewStoreService(stores repository.StoreRepository, users repository.UserRepository, dispatcher events.Dispatcher) *StoreService {
	return &StoreService{stores: stores, users: users, dispatcher: dispatcher}
}

// Create persists a new store after validating the manager exists.
func (s *StoreService) Create(ctx context.Context, store *domain.Store) (*StoreView, error) {
	manager, err := s.manager(ctx, store.ManagerID)
	if err != nil {
		return nil, err
	}

	if err := s.stores.Create(ctx, store); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventStoreCreated, store.Name, events.StoreCreatedPayload{
			StoreID:   store.ID,
			Name:      store.Name,
			ManagerID: store.ManagerID,
		}))
	}
	return &StoreView{Store: store, ManagerName: manager.Name}, nil
}

// GetByID loads one store with manager name.
func (s *StoreService) GetByID(ctx context.Context, id int64) (*StoreView, error) {
	store, err := s.stores.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("store", map[string]any{"id": id})
		}
		return nil, err
	}
	return s.withManager(ctx, store)
}

// List returns all stores with manager names.
func (s *StoreService) List(ctx context.Context) ([]*StoreView, error) {
	stores, err := s.stores.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.withManagers(ctx, stores)
}

// ListByManagerID returns the stores run by one manager.
func (s *StoreService) ListByManagerID(ctx context.Context, managerID int64) ([]*StoreView, error) {
	stores, err := s.stores.ListByManagerID(ctx, managerID)
	if err != nil {
		return nil, err
	}
	return s.withManagers(ctx, stores)
}

// Update applies a partial update to a store.
func (s *StoreService) Update(ctx context.Context, id int64, name, location *string, managerID *int64) (*StoreView, error) {
	store, err := s.stores.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("store", map[string]any{"id": id})
		}
		return nil, err
	}

	if name != nil {
		store.Name = *name
	}
	if location != nil {
		store.Location = *location
	}
	if managerID != nil {
		if _, err := s.manager(ctx, *managerID); err != nil {
			return nil, err
		}
		store.ManagerID = *managerID
	}

	if err := s.stores.Update(ctx, store); err != nil {
		return nil, err
	}
	return s.withManager(ctx, store)
}

// Delete removes a store.
func (s *StoreService) Delete(ctx context.Context, id int64) error {
	if err := s.stores.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("store", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

func (s *StoreService) manager(ctx context.Context, id int64) (*domain.User, error) {
	manager, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, err
	}
	return manager, nil
}

func (s *StoreService) withManager(ctx context.Context, store *domain.Store) (*StoreView, error) {
	manager, err := s.manager(ctx, store.ManagerID)
	if err != nil {
		return nil, err
	}
	return &StoreView{Store: store, ManagerName: manager.Name}, nil
}

func (s *StoreService) withManagers(ctx context.Context, stores []*domain.Store) ([]*StoreView, error) {
	views := make([]*StoreView, 0, len(stores))
	for _, store := range stores {
		view, err := s.withManager(ctx, store)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
