package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates the database with initial development data: one building,
// one apartment, one tenant and one active lease, so template previews have
// something to render against out of the box. No-op if a lease already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM leases").Scan(&count); err != nil {
		return fmt.Errorf("seed check leases: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	var buildingID string
	err = tx.QueryRow(`
		INSERT INTO buildings (name, street, city)
		VALUES ('Linden Court', 'Strada Teilor 14', 'Cluj-Napoca')
		RETURNING id
	`).Scan(&buildingID)
	if err != nil {
		return fmt.Errorf("seed building: %w", err)
	}

	var apartmentID string
	err = tx.QueryRow(`
		INSERT INTO apartments (building_id, number, floor, area_sqm, rooms)
		VALUES ($1, '3B', 2, 54.5, 2)
		RETURNING id
	`, buildingID).Scan(&apartmentID)
	if err != nil {
		return fmt.Errorf("seed apartment: %w", err)
	}

	var tenantID string
	err = tx.QueryRow(`
		INSERT INTO tenants (full_name, email, phone, id_number)
		VALUES ('Ana Popescu', 'ana.popescu@example.com', '+40 700 000 000', 'CJ123456')
		RETURNING id
	`).Scan(&tenantID)
	if err != nil {
		return fmt.Errorf("seed tenant: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO leases (apartment_id, tenant_id, start_date, end_date, monthly_rent, deposit_months, currency)
		VALUES ($1, $2, CURRENT_DATE, CURRENT_DATE + INTERVAL '1 year', 450, 2, 'EUR')
	`, apartmentID, tenantID)
	if err != nil {
		return fmt.Errorf("seed lease: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with sample lease data",
		"tenant", "Ana Popescu",
		"apartment", "3B",
	)

	return nil
}
