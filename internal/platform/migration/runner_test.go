// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToPgx5DSN(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"postgres://u:p@localhost:5432/fitlog?sslmode=disable", "pgx5://u:p@localhost:5432/fitlog?sslmode=disable"},
		{"postgresql://localhost/fitlog", "pgx5://localhost/fitlog"},
		{"pgx5://localhost/fitlog", "pgx5://localhost/fitlog"},
		{"host=localhost dbname=fitlog", "host=localhost dbname=fitlog"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, convertToPgx5DSN(tt.input), tt.input)
	}
}
