package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"ms-tickets/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// CreateTicket inserts one row. The database assigns the id and bun writes
// it back onto the model.
func (d *DB) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	_, err := d.Bun.NewInsert().Model(ticket).Exec(ctx)
	return err
}

func (d *DB) GetTicketByID(ctx context.Context, id int64) (*models.Ticket, error) {
	var ticket models.Ticket
	err := d.Bun.NewSelect().
		Model(&ticket).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrTicketNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

// ListTickets returns every row. No ORDER BY: callers get the database's
// natural order.
func (d *DB) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	tickets := make([]models.Ticket, 0)
	err := d.Bun.NewSelect().
		Model(&tickets).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (d *DB) UpdateTicket(ctx context.Context, ticket models.Ticket) error {
	_, err := d.Bun.NewUpdate().
		Model(&ticket).
		Column("title", "description", "status").
		Where("id = ?", ticket.ID).
		Exec(ctx)
	return err
}

func (d *DB) DeleteTicket(ctx context.Context, id int64) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Ticket)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}
