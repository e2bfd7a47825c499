package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/solara/venue-reservation/internal/model"
	"github.com/solara/venue-reservation/internal/repository"
)

// EventHandler serves the event catalog: a public listing plus the
// admin-only create, update and delete operations.
type EventHandler struct {
	Events *repository.EventRepo
}

func NewEventHandler(events *repository.EventRepo) *EventHandler {
	return &EventHandler{Events: events}
}

type createEventReq struct {
	Title           string `json:"title" validate:"required"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	Place           string `json:"place"`
	GuestsRemaining int64  `json:"guestsRemaining" validate:"min=0"`
	Price           int64  `json:"price" validate:"min=0"`
	Kind            string `json:"kind" validate:"omitempty,oneof=public private"`
}

// List returns every event ordered by date.  Public, no auth.
func (h *EventHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	events, err := h.Events.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, events)
}

// Get returns a single event by ID.
func (h *EventHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ev, err := h.Events.FindByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if ev == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	}
	return c.JSON(http.StatusOK, ev)
}

// Create adds an event to the catalog.  Missing capacity and price
// default to zero; missing kind defaults to public.
func (h *EventHandler) Create(c echo.Context) error {
	var req createEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Date = strings.TrimSpace(req.Date)
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Kind == "" {
		req.Kind = model.EventKindPublic
	}

	ev := &model.Event{
		Title:           req.Title,
		Date:            req.Date,
		Place:           strings.TrimSpace(req.Place),
		GuestsRemaining: req.GuestsRemaining,
		Price:           req.Price,
		Kind:            req.Kind,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Events.Create(ctx, ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}
	return c.JSON(http.StatusCreated, ev)
}

// Update applies a partial update to an event.
func (h *EventHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	var patch repository.EventPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if patch.Kind != nil && *patch.Kind != model.EventKindPublic && *patch.Kind != model.EventKindPrivate {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid kind"})
	}
	if patch.GuestsRemaining != nil && *patch.GuestsRemaining < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "guestsRemaining must be >= 0"})
	}
	if patch.Price != nil && *patch.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be >= 0"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ev, err := h.Events.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update event failed"})
	}
	return c.JSON(http.StatusOK, ev)
}

// Delete removes an event from the catalog.
func (h *EventHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Events.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete event failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
