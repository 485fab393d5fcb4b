package reporting_test

import (
	"testing"

	"go-pos/internal/reporting"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPctChange(t *testing.T) {
	d := decimal.RequireFromString
	tests := []struct {
		current, previous string
		want              string
	}{
		{"0", "0", "+0%"},
		{"500", "0", "+0%"},
		{"-20", "0", "+0%"},
		{"110", "100", "+10.0%"},
		{"800", "400", "+100.0%"},
		{"100", "100", "+0.0%"},
		{"75", "100", "-25.0%"},
		{"1", "3", "-66.7%"},
		{"10", "-20", "+150.0%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, reporting.PctChange(d(tt.current), d(tt.previous)), "%s vs %s", tt.current, tt.previous)
	}
}
