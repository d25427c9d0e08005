// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses optional URL query parameters into typed values.
package query

import (
	"net/url"
	"strings"
	"time"

	"github.com/taibuivan/fitlog/pkg/date"
)

// Time parses an optional date parameter.
//
// It returns nil when the parameter is absent or blank, and [date.ErrFormat]
// when it is present but unparseable.
func Time(values url.Values, key string) (*time.Time, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}

	parsed, err := date.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// String returns the trimmed parameter, or an empty string when absent.
func String(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}
