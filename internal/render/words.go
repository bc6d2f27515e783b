// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import "strings"

var onesWords = []string{
	"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var tensWords = []string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy",
	"eighty", "ninety",
}

// scaleWords reaches quintillion, past the largest int64 group, so no
// amount an int64 can hold runs off the end of the table.
var scaleWords = []string{
	"", "thousand", "million", "billion", "trillion", "quadrillion",
	"quintillion",
}

// numberWords converts a positive integer to English words.
func numberWords(n int64) string {
	var groups []string
	scale := 0
	for n > 0 {
		group := n % 1000
		if group != 0 {
			part := hundredsWords(int(group))
			if scaleWords[scale] != "" {
				part += " " + scaleWords[scale]
			}
			groups = append([]string{part}, groups...)
		}
		n /= 1000
		scale++
	}
	return strings.Join(groups, " ")
}

// hundredsWords spells a group of up to three digits (1–999).
func hundredsWords(n int) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, onesWords[n/100], "hundred")
		n %= 100
	}
	if n >= 20 {
		if n%10 != 0 {
			parts = append(parts, tensWords[n/10]+"-"+onesWords[n%10])
		} else {
			parts = append(parts, tensWords[n/10])
		}
	} else if n > 0 {
		parts = append(parts, onesWords[n])
	}
	return strings.Join(parts, " ")
}
