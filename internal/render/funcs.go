// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// contractFuncs returns the filter set available to contract templates.
// These are the transforms contract authors actually reach for: amounts,
// amounts in words, and long-form dates.
func contractFuncs() template.FuncMap {
	return template.FuncMap{
		"money":     money,
		"words":     amountInWords,
		"longdate":  longDate,
		"shortdate": shortDate,
		"upper":     strings.ToUpper,
		"lower":     strings.ToLower,
	}
}

// money formats an amount with thousands separators and two decimals,
// followed by the currency code: money 1234.5 "EUR" → "1,234.50 EUR".
func money(amount float64, currency string) string {
	return fmt.Sprintf("%s %s", humanize.FormatFloat("#,###.##", amount), currency)
}

// longDate renders a date the way it appears in contract prose.
func longDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// shortDate renders a compact numeric date.
func shortDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// amountInWords spells out the whole part of an amount, the way contracts
// restate sums to prevent tampering: 1250 → "one thousand two hundred fifty".
// Cents are dropped; negative amounts are prefixed with "minus".
func amountInWords(amount float64) string {
	n := int64(amount)
	if n == 0 {
		return "zero"
	}
	if n < 0 {
		return "minus " + numberWords(-n)
	}
	return numberWords(n)
}
