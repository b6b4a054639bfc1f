package domain

import "context"

// Classification is a vehicle category shown in the site navigation.
type Classification struct {
	ID   int64
	Name string
}

// Vehicle represents one inventory item.
type Vehicle struct {
	ID                 int64
	Make               string
	Model              string
	Year               int
	Description        string
	Image              string
	Thumbnail          string
	Price              float64
	Miles              int64
	Color              string
	ClassificationID   int64
	ClassificationName string
}

// InventoryRepository defines the port for inventory persistence operations.
type InventoryRepository interface {
	Classifications(ctx context.Context) ([]Classification, error)
	AddClassification(ctx context.Context, name string) (int64, error)
	VehiclesByClassification(ctx context.Context, classificationID int64) ([]Vehicle, error)
	VehicleByID(ctx context.Context, id int64) (*Vehicle, error)
	AddVehicle(ctx context.Context, v *Vehicle) (int64, error)
	AllVehicles(ctx context.Context) ([]Vehicle, error)
}
