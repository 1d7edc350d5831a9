package conversation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatFechaLarga(t *testing.T) {
	// 25/05/2026 is a Monday.
	assert.Equal(t, "lunes 25 de mayo, 14:30",
		formatFechaLarga(time.Date(2026, time.May, 25, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, "domingo 1 de marzo, 09:05",
		formatFechaLarga(time.Date(2026, time.March, 1, 9, 5, 0, 0, time.UTC)))
}

func TestFormatMonto(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.000"},
		{1500, "1.500"},
		{1234567, "1.234.567"},
		{1500.5, "1.500,50"},
		{99.99, "99,99"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, formatMonto(tc.in), "amount %v", tc.in)
	}
}
