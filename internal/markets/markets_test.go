package markets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthStatus(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "STRONG"},
		{70, "STRONG"},
		{69, "STABLE"},
		{40, "STABLE"},
		{39, "WEAK"},
		{0, "WEAK"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HealthStatus(tt.score), "HealthStatus(%d)", tt.score)
	}
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "£185,000", FormatCurrency(185000))
	assert.Equal(t, "-£1,100", FormatCurrency(-1100))
	assert.Equal(t, "10,800", FormatNumber(10800))
	assert.Equal(t, "28", FormatNumber(28))
}

func TestSample(t *testing.T) {
	r := Sample()
	assert.Equal(t, "STRONG", r.Health())
	assert.Len(t, r.KeyMetrics, 4)
	assert.Equal(t, "£185,000", r.KeyMetrics[0].Value)

	total := 0.0
	for _, p := range r.PropertyTypes {
		total += p.Percentage
	}
	assert.InDelta(t, 100.0, total, 0.1)

	// Callers may mutate their copy.
	r.KeyMetrics[0].Value = "changed"
	assert.Equal(t, "£185,000", Sample().KeyMetrics[0].Value)
}
