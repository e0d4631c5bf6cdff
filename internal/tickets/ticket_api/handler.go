package ticket_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ms-tickets/internal/logger"
	"ms-tickets/internal/models"
	tickets "ms-tickets/internal/tickets/service"
)

type Handler struct {
	TicketService *tickets.TicketService
	Logger        *logger.Logger
}

func NewHandler(ticketService *tickets.TicketService, log *logger.Logger) *Handler {
	return &Handler{
		TicketService: ticketService,
		Logger:        log,
	}
}

// RegisterRoutes mounts the ticket endpoints under /tickets.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/tickets", func(r chi.Router) {
		r.Post("/", h.CreateTicket)
		r.Get("/", h.ListTickets)
		r.Get("/{ticketID}", h.GetTicket)
		r.Put("/{ticketID}", h.UpdateTicket)
		r.Delete("/{ticketID}", h.DeleteTicket)
	})
}

func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var payload models.TicketCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBodyError(w, err)
		return
	}
	if errs := validateCreate(payload); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	ticket, err := h.TicketService.CreateTicket(r.Context(), payload)
	if err != nil {
		h.serverError(w, "create", err)
		return
	}

	if h.Logger != nil {
		h.Logger.LogTicket("CREATE", ticket.ID, "ticket created")
	}
	writeJSON(w, http.StatusCreated, ticket)
}

func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	all, err := h.TicketService.ListTickets(r.Context())
	if err != nil {
		h.serverError(w, "list", err)
		return
	}

	// The status filter is applied after retrieval, by exact string match.
	status := r.URL.Query().Get("status")
	if status == "" {
		writeJSON(w, http.StatusOK, all)
		return
	}

	filtered := make([]models.Ticket, 0, len(all))
	for _, t := range all {
		if t.Status == status {
			filtered = append(filtered, t)
		}
	}
	writeJSON(w, http.StatusOK, filtered)
}

func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	id, ok := ticketID(w, r)
	if !ok {
		return
	}

	ticket, err := h.TicketService.GetTicket(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrTicketNotFound) {
			writeNotFound(w)
			return
		}
		h.serverError(w, "get", err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

func (h *Handler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	id, ok := ticketID(w, r)
	if !ok {
		return
	}

	var patch models.TicketUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeBodyError(w, err)
		return
	}

	ticket, err := h.TicketService.UpdateTicket(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, models.ErrTicketNotFound) {
			writeNotFound(w)
			return
		}
		h.serverError(w, "update", err)
		return
	}

	if h.Logger != nil {
		h.Logger.LogTicket("UPDATE", ticket.ID, "ticket updated")
	}
	writeJSON(w, http.StatusOK, ticket)
}

func (h *Handler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	id, ok := ticketID(w, r)
	if !ok {
		return
	}

	ticket, err := h.TicketService.DeleteTicket(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrTicketNotFound) {
			writeNotFound(w)
			return
		}
		h.serverError(w, "delete", err)
		return
	}

	if h.Logger != nil {
		h.Logger.LogTicket("DELETE", ticket.ID, "ticket deleted")
	}
	// Responds with the record as it existed before deletion.
	writeJSON(w, http.StatusOK, ticket)
}

// ticketID parses the {ticketID} path parameter. On failure it writes a 422
// and returns ok=false.
func ticketID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "ticketID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeValidationErrors(w, []FieldError{
			{Field: "ticket_id", Message: "value is not a valid integer"},
		})
		return 0, false
	}
	return id, true
}

func (h *Handler) serverError(w http.ResponseWriter, op string, err error) {
	if h.Logger != nil {
		h.Logger.Error("TICKET", fmt.Sprintf("%s failed: %v", op, err))
	}
	writeJSON(w, http.StatusInternalServerError, detailBody{Detail: "Internal server error"})
}
