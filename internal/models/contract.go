// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Building is a managed property.
type Building struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Street    string    `json:"street"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"created_at"`
}

// Apartment is a rentable unit inside a building.
type Apartment struct {
	ID         uuid.UUID `json:"id"`
	BuildingID uuid.UUID `json:"building_id"`
	Number     string    `json:"number"`
	Floor      int       `json:"floor"`
	AreaSqm    float64   `json:"area_sqm"`
	Rooms      int       `json:"rooms"`
	CreatedAt  time.Time `json:"created_at"`
}

// Tenant is a person renting an apartment.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	IDNumber  string    `json:"id_number"`
	CreatedAt time.Time `json:"created_at"`
}

// Lease ties a tenant to an apartment for a period at a monthly rent.
type Lease struct {
	ID            uuid.UUID `json:"id"`
	ApartmentID   uuid.UUID `json:"apartment_id"`
	TenantID      uuid.UUID `json:"tenant_id"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	MonthlyRent   float64   `json:"monthly_rent"`
	DepositMonths int       `json:"deposit_months"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
}

// ContractData is the flattened lease context a template preview renders
// against: one lease joined with its tenant, apartment and building.
// Template authors reference these fields as {{.Tenant.FullName}},
// {{.Lease.MonthlyRent}}, and so on.
type ContractData struct {
	Lease     Lease
	Tenant    Tenant
	Apartment Apartment
	Building  Building
	Today     time.Time
}

// Deposit returns the deposit amount (monthly rent times deposit months).
func (c *ContractData) Deposit() float64 {
	return c.Lease.MonthlyRent * float64(c.Lease.DepositMonths)
}

// PaymentInstallment is one entry of a lease's payment schedule.
type PaymentInstallment struct {
	Due    time.Time
	Amount float64
}

// maxScheduleEntries caps the generated schedule so a malformed lease
// period cannot blow up a render.
const maxScheduleEntries = 120

// PaymentSchedule returns the monthly installments from the lease start to
// its end, one per month. Templates iterate over it to print the payment
// table ({{range .PaymentSchedule}}).
func (c *ContractData) PaymentSchedule() []PaymentInstallment {
	var schedule []PaymentInstallment
	for due := c.Lease.StartDate; due.Before(c.Lease.EndDate); due = due.AddDate(0, 1, 0) {
		schedule = append(schedule, PaymentInstallment{Due: due, Amount: c.Lease.MonthlyRent})
		if len(schedule) >= maxScheduleEntries {
			break
		}
	}
	return schedule
}
