package db

import (
	"context"

	"ms-tickets/internal/models"
)

// CreateSchema creates the tickets table if it does not exist yet. There is
// no migration versioning; the schema is a single table.
func (d *DB) CreateSchema(ctx context.Context) error {
	_, err := d.Bun.NewCreateTable().
		Model((*models.Ticket)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}
