package models

import (
	"errors"

	"github.com/uptrace/bun"
)

// ErrTicketNotFound is returned when no ticket row exists for a given id.
var ErrTicketNotFound = errors.New("ticket not found")

type Ticket struct {
	bun.BaseModel `bun:"table:tickets"`

	ID          int64  `bun:"id,pk,autoincrement" json:"id"`
	Title       string `bun:"title,notnull" json:"title"`
	Description string `bun:"description,notnull" json:"description"`
	Status      string `bun:"status,notnull,default:'open'" json:"status"`
}

// TicketCreate is the request body for creating a ticket. Both fields are
// mandatory and must be non-empty.
type TicketCreate struct {
	Title       string `json:"title" validate:"required,min=1"`
	Description string `json:"description" validate:"required,min=1"`
}

// TicketUpdate is the merge-patch body for updating a ticket. Only fields
// present in the request overwrite the stored value; nil means "leave as is".
type TicketUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}
