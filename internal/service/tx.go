package service

import (
	"context"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// Acteur identifies who triggered a workflow, for the audit trail and the
// stock ledger. ID is nil for system-initiated actions (cron, workers).
type Acteur struct {
	ID       *uint
	Username string
}

// ActeurSysteme is used by background jobs.
var ActeurSysteme = Acteur{Username: "systeme"}
