package service

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	dateFormat     = "2006-01-02"
	dateTimeFormat = time.RFC3339
)

func decimalFromInt(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateFormat)
	return &s
}
