package app

import (
	"context"
	"fmt"

	"motors/internal/domain"
)

// InventoryService exposes classification and vehicle operations.
type InventoryService struct {
	inventory domain.InventoryRepository
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(inventory domain.InventoryRepository) *InventoryService {
	return &InventoryService{inventory: inventory}
}

// Classifications lists all classifications ordered by name. Every page
// render calls this to build the navigation bar.
func (s *InventoryService) Classifications(ctx context.Context) ([]domain.Classification, error) {
	return s.inventory.Classifications(ctx)
}

// AddClassification creates a classification and returns its id.
func (s *InventoryService) AddClassification(ctx context.Context, name string) (int64, error) {
	id, err := s.inventory.AddClassification(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("add classification: %w", err)
	}
	return id, nil
}

// VehiclesByClassification lists the vehicles in one classification.
func (s *InventoryService) VehiclesByClassification(ctx context.Context, classificationID int64) ([]domain.Vehicle, error) {
	return s.inventory.VehiclesByClassification(ctx, classificationID)
}

// VehicleByID returns one vehicle or ErrNotFound.
func (s *InventoryService) VehicleByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return s.inventory.VehicleByID(ctx, id)
}

// AddVehicle creates an inventory item and returns its id.
func (s *InventoryService) AddVehicle(ctx context.Context, v *domain.Vehicle) (int64, error) {
	id, err := s.inventory.AddVehicle(ctx, v)
	if err != nil {
		return 0, fmt.Errorf("add vehicle: %w", err)
	}
	return id, nil
}

// AllVehicles lists the whole inventory for the management view.
func (s *InventoryService) AllVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return s.inventory.AllVehicles(ctx)
}
