// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rentadmin/internal/models"
)

// leaseJoinQuery selects one lease joined with its tenant, apartment and
// building — everything a contract preview renders against.
const leaseJoinQuery = `
	SELECT
		l.id, l.start_date, l.end_date, l.monthly_rent, l.deposit_months, l.currency, l.created_at,
		t.id, t.full_name, t.email, t.phone, t.id_number,
		a.id, a.number, a.floor, a.area_sqm, a.rooms,
		b.id, b.name, b.street, b.city
	FROM leases l
	JOIN tenants t ON t.id = l.tenant_id
	JOIN apartments a ON a.id = l.apartment_id
	JOIN buildings b ON b.id = a.building_id
`

// LeaseStore provides the lease context used by template previews. It is
// the service's only view into the property-management data; lease CRUD
// itself lives elsewhere.
type LeaseStore struct {
	db *sql.DB
}

// NewLeaseStore creates a new LeaseStore with the given database connection.
func NewLeaseStore(db *sql.DB) *LeaseStore {
	return &LeaseStore{db: db}
}

// ContractData returns the render context for a lease. A nil ref resolves
// to the most recently created lease. Returns nil when the referenced
// lease does not exist, or when ref is nil and no lease exists at all.
func (s *LeaseStore) ContractData(ctx context.Context, ref *uuid.UUID) (*models.ContractData, error) {
	var row *sql.Row
	if ref != nil {
		row = s.db.QueryRowContext(ctx, leaseJoinQuery+` WHERE l.id = $1`, *ref)
	} else {
		row = s.db.QueryRowContext(ctx, leaseJoinQuery+` ORDER BY l.created_at DESC LIMIT 1`)
	}

	data := &models.ContractData{Today: time.Now()}
	err := row.Scan(
		&data.Lease.ID, &data.Lease.StartDate, &data.Lease.EndDate,
		&data.Lease.MonthlyRent, &data.Lease.DepositMonths, &data.Lease.Currency,
		&data.Lease.CreatedAt,
		&data.Tenant.ID, &data.Tenant.FullName, &data.Tenant.Email,
		&data.Tenant.Phone, &data.Tenant.IDNumber,
		&data.Apartment.ID, &data.Apartment.Number, &data.Apartment.Floor,
		&data.Apartment.AreaSqm, &data.Apartment.Rooms,
		&data.Building.ID, &data.Building.Name, &data.Building.Street, &data.Building.City,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load contract data: %w", err)
	}

	data.Lease.TenantID = data.Tenant.ID
	data.Lease.ApartmentID = data.Apartment.ID
	data.Apartment.BuildingID = data.Building.ID

	return data, nil
}
