package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Pagination
		want Pagination
	}{
		{"zero value gets default limit", Pagination{}, Pagination{Skip: 0, Limit: 100}},
		{"negative skip clamped", Pagination{Skip: -5, Limit: 10}, Pagination{Skip: 0, Limit: 10}},
		{"limit capped", Pagination{Skip: 20, Limit: 500}, Pagination{Skip: 20, Limit: 100}},
		{"valid window untouched", Pagination{Skip: 40, Limit: 25}, Pagination{Skip: 40, Limit: 25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}
