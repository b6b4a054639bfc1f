package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"motors/internal/domain"
)

const vehicleColumns = "i.inv_id, i.inv_make, i.inv_model, i.inv_year, i.inv_description, i.inv_image, i.inv_thumbnail, i.inv_price, i.inv_miles, i.inv_color, i.classification_id, c.classification_name"

// Classifications lists all classifications ordered by name.
func (d *DB) Classifications(ctx context.Context) ([]domain.Classification, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT classification_id, classification_name FROM classification ORDER BY classification_name",
	)
	if err != nil {
		return nil, fmt.Errorf("list classifications: %w", err)
	}
	defer rows.Close()

	var cs []domain.Classification
	for rows.Next() {
		var c domain.Classification
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan classification: %w", err)
		}
		cs = append(cs, c)
	}
	return cs, rows.Err()
}

// AddClassification inserts a classification and returns its id.
func (d *DB) AddClassification(ctx context.Context, name string) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO classification (classification_name) VALUES ($1) RETURNING classification_id",
		name,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("add classification: %w", err)
	}
	return id, nil
}

// VehiclesByClassification lists vehicles in one classification with the
// classification name joined in.
func (d *DB) VehiclesByClassification(ctx context.Context, classificationID int64) ([]domain.Vehicle, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+vehicleColumns+" FROM inventory i JOIN classification c ON i.classification_id = c.classification_id WHERE i.classification_id = $1 ORDER BY i.inv_make, i.inv_model",
		classificationID,
	)
	if err != nil {
		return nil, fmt.Errorf("vehicles by classification: %w", err)
	}
	defer rows.Close()
	return collectVehicles(rows)
}

// VehicleByID retrieves one vehicle or domain.ErrNotFound.
func (d *DB) VehicleByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := d.sql.QueryRowContext(ctx,
		"SELECT "+vehicleColumns+" FROM inventory i JOIN classification c ON i.classification_id = c.classification_id WHERE i.inv_id = $1",
		id,
	).Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.Description, &v.Image, &v.Thumbnail,
		&v.Price, &v.Miles, &v.Color, &v.ClassificationID, &v.ClassificationName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("vehicle by id: %w", err)
	}
	return &v, nil
}

// AddVehicle inserts an inventory item and returns its id.
func (d *DB) AddVehicle(ctx context.Context, v *domain.Vehicle) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO inventory (inv_make, inv_model, inv_year, inv_description, inv_image, inv_thumbnail, inv_price, inv_miles, inv_color, classification_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING inv_id`,
		v.Make, v.Model, v.Year, v.Description, v.Image, v.Thumbnail, v.Price, v.Miles, v.Color, v.ClassificationID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("add vehicle: %w", err)
	}
	return id, nil
}

// AllVehicles lists the entire inventory for the management view.
func (d *DB) AllVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+vehicleColumns+" FROM inventory i JOIN classification c ON i.classification_id = c.classification_id ORDER BY i.inv_make, i.inv_model",
	)
	if err != nil {
		return nil, fmt.Errorf("all vehicles: %w", err)
	}
	defer rows.Close()
	return collectVehicles(rows)
}

func collectVehicles(rows *sql.Rows) ([]domain.Vehicle, error) {
	var vs []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.Description, &v.Image, &v.Thumbnail,
			&v.Price, &v.Miles, &v.Color, &v.ClassificationID, &v.ClassificationName); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		vs = append(vs, v)
	}
	return vs, rows.Err()
}
