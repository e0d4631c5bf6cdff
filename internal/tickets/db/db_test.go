package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"ms-tickets/internal/models"
	"ms-tickets/internal/tickets/db"
)

func setupTestDB(t *testing.T) *db.DB {
	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	if err := bunDB.ResetModel(context.Background(), (*models.Ticket)(nil)); err != nil {
		t.Fatalf("Failed to reset model: %v", err)
	}

	return &db.DB{Bun: bunDB}
}

func TestCreateAssignsID(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()

	ticket := &models.Ticket{Title: "Broken build", Description: "CI fails on main", Status: "open"}
	if err := d.CreateTicket(ctx, ticket); err != nil {
		t.Fatalf("Failed to create ticket: %v", err)
	}
	if ticket.ID == 0 {
		t.Fatal("Expected database to assign a non-zero id")
	}

	retrieved, err := d.GetTicketByID(ctx, ticket.ID)
	if err != nil {
		t.Fatalf("Failed to retrieve ticket: %v", err)
	}
	if retrieved.Title != ticket.Title {
		t.Errorf("Expected title %q, got %q", ticket.Title, retrieved.Title)
	}
	if retrieved.Description != ticket.Description {
		t.Errorf("Expected description %q, got %q", ticket.Description, retrieved.Description)
	}
	if retrieved.Status != "open" {
		t.Errorf("Expected status open, got %q", retrieved.Status)
	}
}

func TestGetUnknownIDReturnsNotFound(t *testing.T) {
	d := setupTestDB(t)

	_, err := d.GetTicketByID(context.Background(), 9999999)
	if !errors.Is(err, models.ErrTicketNotFound) {
		t.Errorf("Expected ErrTicketNotFound, got %v", err)
	}
}

func TestListTickets(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()

	tickets, err := d.ListTickets(ctx)
	if err != nil {
		t.Fatalf("Failed to list tickets: %v", err)
	}
	if tickets == nil {
		t.Fatal("Expected an empty slice, got nil")
	}
	if len(tickets) != 0 {
		t.Fatalf("Expected 0 tickets, got %d", len(tickets))
	}

	for _, title := range []string{"first", "second"} {
		ticket := &models.Ticket{Title: title, Description: "d", Status: "open"}
		if err := d.CreateTicket(ctx, ticket); err != nil {
			t.Fatalf("Failed to create ticket: %v", err)
		}
	}

	tickets, err = d.ListTickets(ctx)
	if err != nil {
		t.Fatalf("Failed to list tickets: %v", err)
	}
	if len(tickets) != 2 {
		t.Fatalf("Expected 2 tickets, got %d", len(tickets))
	}
}

func TestUpdateTicket(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()

	ticket := &models.Ticket{Title: "before", Description: "d", Status: "open"}
	if err := d.CreateTicket(ctx, ticket); err != nil {
		t.Fatalf("Failed to create ticket: %v", err)
	}

	ticket.Title = "after"
	ticket.Status = "closed"
	if err := d.UpdateTicket(ctx, *ticket); err != nil {
		t.Fatalf("Failed to update ticket: %v", err)
	}

	retrieved, err := d.GetTicketByID(ctx, ticket.ID)
	if err != nil {
		t.Fatalf("Failed to retrieve ticket: %v", err)
	}
	if retrieved.Title != "after" {
		t.Errorf("Expected title after, got %q", retrieved.Title)
	}
	if retrieved.Status != "closed" {
		t.Errorf("Expected status closed, got %q", retrieved.Status)
	}
	if retrieved.Description != "d" {
		t.Errorf("Expected description unchanged, got %q", retrieved.Description)
	}
}

func TestDeleteTicket(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()

	ticket := &models.Ticket{Title: "to delete", Description: "d", Status: "open"}
	if err := d.CreateTicket(ctx, ticket); err != nil {
		t.Fatalf("Failed to create ticket: %v", err)
	}

	if err := d.DeleteTicket(ctx, ticket.ID); err != nil {
		t.Fatalf("Failed to delete ticket: %v", err)
	}

	_, err := d.GetTicketByID(ctx, ticket.ID)
	if !errors.Is(err, models.ErrTicketNotFound) {
		t.Errorf("Expected ErrTicketNotFound after delete, got %v", err)
	}
}
