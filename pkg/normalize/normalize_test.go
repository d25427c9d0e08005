// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/fitlog/pkg/normalize"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already_canonical", "ann@x.io", "ann@x.io"},
		{"upper_case", "Ann@X.IO", "ann@x.io"},
		{"surrounding_space", "  ann@x.io\t", "ann@x.io"},
		{"decomposed_accent", "Jose\u0301@x.io", "jos\u00e9@x.io"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Email(tt.input))
		})
	}
}

func TestText(t *testing.T) {
	assert.Equal(t, "Morning Run", normalize.Text("  Morning \t  Run \n"))
	assert.Equal(t, "", normalize.Text("   "))
	assert.Equal(t, "Caf\u00e9", normalize.Text("Cafe\u0301"))
}
