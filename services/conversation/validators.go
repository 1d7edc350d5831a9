package conversation

import "regexp"

// Business hours: appointments may start at 09:00 up to, but not including,
// 20:00. Only the start hour is checked; a service that runs past closing is
// still accepted when it starts before 20:00.
const (
	openingHour = 9
	closingHour = 20
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// Day 01-31, month 01-12, year 20xx. The regex does not know month
	// lengths; a day like 31/02 passes here and is normalized by time.Date,
	// after which the availability gate vets the resulting real day.
	dateRegex = regexp.MustCompile(`^(0[1-9]|[12][0-9]|3[01])/(0[1-9]|1[0-2])/(20\d{2})$`)

	timeRegex = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)
)
