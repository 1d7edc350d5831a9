package conversation

import (
	"fmt"
	"strings"
	"time"
)

var diasSemana = map[time.Weekday]string{
	time.Sunday:    "domingo",
	time.Monday:    "lunes",
	time.Tuesday:   "martes",
	time.Wednesday: "miércoles",
	time.Thursday:  "jueves",
	time.Friday:    "viernes",
	time.Saturday:  "sábado",
}

var meses = map[time.Month]string{
	time.January:   "enero",
	time.February:  "febrero",
	time.March:     "marzo",
	time.April:     "abril",
	time.May:       "mayo",
	time.June:      "junio",
	time.July:      "julio",
	time.August:    "agosto",
	time.September: "septiembre",
	time.October:   "octubre",
	time.November:  "noviembre",
	time.December:  "diciembre",
}

// formatFechaLarga renders a timestamp like "lunes 25 de mayo, 14:30".
func formatFechaLarga(t time.Time) string {
	return fmt.Sprintf("%s %d de %s, %02d:%02d",
		diasSemana[t.Weekday()], t.Day(), meses[t.Month()], t.Hour(), t.Minute())
}

// formatMonto renders an amount with es-AR thousands separators: 1500 → "1.500".
func formatMonto(amount float64) string {
	entero := int64(amount)
	s := fmt.Sprintf("%d", entero)

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ".")

	if cents := amount - float64(entero); cents >= 0.005 {
		out = fmt.Sprintf("%s,%02d", out, int(cents*100+0.5))
	}
	return out
}
