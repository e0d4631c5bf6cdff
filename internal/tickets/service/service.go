package tickets

import (
	"context"
	"errors"
	"fmt"

	"ms-tickets/internal/models"
)

type TicketDBLayer interface {
	CreateTicket(ctx context.Context, ticket *models.Ticket) error
	GetTicketByID(ctx context.Context, id int64) (*models.Ticket, error)
	ListTickets(ctx context.Context) ([]models.Ticket, error)
	UpdateTicket(ctx context.Context, ticket models.Ticket) error
	DeleteTicket(ctx context.Context, id int64) error
}

type TicketService struct {
	DB TicketDBLayer
}

func NewTicketService(db TicketDBLayer) *TicketService {
	return &TicketService{DB: db}
}

// CreateTicket inserts a new ticket with status "open" and returns the
// persisted record including its assigned id.
func (s *TicketService) CreateTicket(ctx context.Context, payload models.TicketCreate) (*models.Ticket, error) {
	ticket := &models.Ticket{
		Title:       payload.Title,
		Description: payload.Description,
		Status:      "open",
	}
	if err := s.DB.CreateTicket(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}
	return ticket, nil
}

func (s *TicketService) GetTicket(ctx context.Context, id int64) (*models.Ticket, error) {
	ticket, err := s.DB.GetTicketByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrTicketNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch ticket %d: %w", id, err)
	}
	return ticket, nil
}

func (s *TicketService) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	tickets, err := s.DB.ListTickets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return tickets, nil
}

// UpdateTicket applies a merge-patch: only fields present in the payload
// overwrite the stored record. Returns the updated record.
func (s *TicketService) UpdateTicket(ctx context.Context, id int64, patch models.TicketUpdate) (*models.Ticket, error) {
	ticket, err := s.DB.GetTicketByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		ticket.Title = *patch.Title
	}
	if patch.Description != nil {
		ticket.Description = *patch.Description
	}
	if patch.Status != nil {
		ticket.Status = *patch.Status
	}

	if err := s.DB.UpdateTicket(ctx, *ticket); err != nil {
		return nil, fmt.Errorf("failed to update ticket %d: %w", id, err)
	}
	return ticket, nil
}

// DeleteTicket removes the row and returns the record as it existed
// immediately before deletion.
func (s *TicketService) DeleteTicket(ctx context.Context, id int64) (*models.Ticket, error) {
	ticket, err := s.DB.GetTicketByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.DeleteTicket(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete ticket %d: %w", id, err)
	}
	return ticket, nil
}
