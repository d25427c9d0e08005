// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package normalize canonicalizes user-supplied text before it is compared or stored.
//
// # Usage
//
// Emails are the login identifier, so "Ann@X.io", " ann@x.io" and the NFD
// spelling of an accented local part must all resolve to one account.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// folder is stateless and safe for concurrent use.
var folder = cases.Fold()

// Email converts an address into its lookup form.
//
// # Transformation Pipeline
//
// 1. Trims surrounding whitespace.
// 2. Normalizes to NFC (composes accented characters).
// 3. Applies Unicode case folding.
func Email(s string) string {
	result := strings.TrimSpace(s)
	result = norm.NFC.String(result)
	return folder.String(result)
}

// Text trims s, composes it to NFC and collapses internal whitespace runs
// into a single space. It is used for names and labels.
func Text(s string) string {
	result := norm.NFC.String(s)
	return strings.Join(strings.FieldsFunc(result, unicode.IsSpace), " ")
}
