// Package Store is the data access layer: reads.go holds the queries and
// writes.go the mutations. Every method runs a single statement on its own
// pooled connection and commits immediately.
package Store

import (
	"time"

	"gorm.io/gorm"

	"Mileage/Models"
)

// Store wraps the database handle shared by all requests.
type Store struct {
	DB *gorm.DB
	// Now stamps created_at and updated_at. Defaults to UTC wall time.
	Now func() time.Time
}

// New creates a Store over db.
func New(db *gorm.DB) *Store {
	return &Store{
		DB: db,
		Now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Models.StoreError{Op: op, Err: err}
}
