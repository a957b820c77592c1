package repository

import "time"

// parseDate accepts "2006-01-02" or RFC 3339 and returns nil when the value
// is empty or unparseable — list filters degrade to "no bound" rather than fail.
func parseDate(v string) *time.Time {
	if v == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t
	}
	return nil
}
