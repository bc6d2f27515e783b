// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"rentadmin/internal/models"
)

// fakeSource serves a fixed ContractData for any known ref, nil otherwise.
type fakeSource struct {
	data  *models.ContractData
	known uuid.UUID
	err   error
}

func (f *fakeSource) ContractData(ctx context.Context, ref *uuid.UUID) (*models.ContractData, error) {
	if f.err != nil {
		return nil, f.err
	}
	if ref != nil && *ref != f.known {
		return nil, nil
	}
	return f.data, nil
}

func testContractData() *models.ContractData {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return &models.ContractData{
		Lease: models.Lease{
			StartDate:     start,
			EndDate:       start.AddDate(1, 0, 0),
			MonthlyRent:   1250.50,
			DepositMonths: 2,
			Currency:      "EUR",
		},
		Tenant:    models.Tenant{FullName: "Ana Popescu", IDNumber: "CJ123456"},
		Apartment: models.Apartment{Number: "3B", Floor: 2},
		Building:  models.Building{Name: "Linden Court", Street: "Strada Teilor 14", City: "Cluj-Napoca"},
		Today:     time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC),
	}
}

func testEngine(data *models.ContractData) (*Engine, uuid.UUID) {
	known := uuid.New()
	return NewEngine(&fakeSource{data: data, known: known}, 5*time.Second), known
}

func TestValidate(t *testing.T) {
	eng, _ := testEngine(testContractData())

	tests := []struct {
		name        string
		text        string
		expectError bool
	}{
		{"plain HTML", `<html><body><h1>Contract</h1></body></html>`, false},
		{"variable", `<p>{{.Tenant.FullName}}</p>`, false},
		{"conditional", `{{if gt .Lease.DepositMonths 0}}deposit{{end}}`, false},
		{"iteration", `{{range .PaymentSchedule}}<tr><td>{{longdate .Due}}</td></tr>{{end}}`, false},
		{"filter chain", `{{money .Lease.MonthlyRent .Lease.Currency}}`, false},
		{"unclosed block", `{{if .Tenant}}no end`, true},
		{"unknown function", `{{frobnicate .Tenant}}`, true},
		{"stray end", `text {{end}}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := eng.Validate(tt.text)
			if tt.expectError && err == nil {
				t.Error("expected syntax error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.expectError {
				var synErr *SyntaxError
				if !errors.As(err, &synErr) {
					t.Errorf("error not classified as SyntaxError: %v", err)
				}
			}
		})
	}
}

func TestRenderSubstitutionAndFilters(t *testing.T) {
	eng, known := testEngine(testContractData())

	text := `<p>{{.Tenant.FullName}} rents {{.Apartment.Number}} at ` +
		`{{money .Lease.MonthlyRent .Lease.Currency}} ({{words .Lease.MonthlyRent}}) ` +
		`from {{longdate .Lease.StartDate}}.</p>`

	html, err := eng.Render(context.Background(), text, &known)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, want := range []string{
		"Ana Popescu",
		"3B",
		"1,250.50 EUR",
		"one thousand two hundred fifty",
		"March 1, 2025",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q:\n%s", want, html)
		}
	}
}

func TestRenderWordsLargeAmount(t *testing.T) {
	data := testContractData()
	data.Lease.MonthlyRent = 1e15

	eng, _ := testEngine(data)
	html, err := eng.Render(context.Background(), `{{words .Lease.MonthlyRent}}`, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(html, "one quadrillion") {
		t.Errorf("output: %q", html)
	}
}

func TestRenderIteration(t *testing.T) {
	eng, known := testEngine(testContractData())

	text := `{{range .PaymentSchedule}}<tr>{{shortdate .Due}}</tr>{{end}}`
	html, err := eng.Render(context.Background(), text, &known)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	// A one-year lease yields twelve installments.
	if got := strings.Count(html, "<tr>"); got != 12 {
		t.Errorf("installment rows: got %d, want 12", got)
	}
	if !strings.Contains(html, "01.03.2025") {
		t.Errorf("first installment date missing:\n%s", html)
	}
}

func TestRenderConditional(t *testing.T) {
	data := testContractData()
	eng, known := testEngine(data)

	text := `{{if gt .Lease.DepositMonths 0}}DEPOSIT DUE{{else}}NO DEPOSIT{{end}}`

	html, err := eng.Render(context.Background(), text, &known)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(html, "DEPOSIT DUE") {
		t.Errorf("conditional took wrong branch:\n%s", html)
	}
}

func TestRenderNoData(t *testing.T) {
	eng := NewEngine(&fakeSource{data: nil}, time.Second)

	_, err := eng.Render(context.Background(), `<p>{{.Tenant.FullName}}</p>`, nil)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestRenderUnknownRef(t *testing.T) {
	eng, _ := testEngine(testContractData())

	unknown := uuid.New()
	_, err := eng.Render(context.Background(), `<p>hi</p>`, &unknown)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData for unknown ref, got %v", err)
	}
}

func TestRenderRuntimeError(t *testing.T) {
	eng, known := testEngine(testContractData())

	// Syntactically valid, but money cannot take a string amount.
	_, err := eng.Render(context.Background(), `{{money .Tenant.FullName "EUR"}}`, &known)
	var runErr *RuntimeError
	if !errors.As(err, &runErr) {
		t.Fatalf("expected RuntimeError, got %v", err)
	}
	var synErr *SyntaxError
	if errors.As(err, &synErr) {
		t.Error("runtime failure misclassified as syntax error")
	}
}

func TestRenderSourceFailure(t *testing.T) {
	eng := NewEngine(&fakeSource{err: errors.New("db down")}, time.Second)

	_, err := eng.Render(context.Background(), `<p>hi</p>`, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	// Storage-level failures stay unclassified — they are not render errors.
	if errors.Is(err, ErrNoData) {
		t.Error("source failure misreported as missing data")
	}
	var synErr *SyntaxError
	var runErr *RuntimeError
	if errors.As(err, &synErr) || errors.As(err, &runErr) {
		t.Errorf("source failure misclassified: %v", err)
	}
}
