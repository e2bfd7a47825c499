package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/solara/venue-reservation/internal/model"
	"github.com/solara/venue-reservation/internal/queue"
	"github.com/solara/venue-reservation/internal/service"
)

// ReservationHandler exposes the admission engine and the read-side
// views over HTTP.  Error mapping is deliberate: capacity failures and
// date conflicts both answer 409, but with messages that tell the user
// which levers they have (fewer seats vs. another date).
type ReservationHandler struct {
	Admissions *service.ReservationService
	Queries    *service.ReservationQueries
}

func NewReservationHandler(adm *service.ReservationService, q *service.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{Admissions: adm, Queries: q}
}

type seatReservationReq struct {
	EventID   uint64 `json:"eventId" validate:"required"`
	SeatCount int64  `json:"seatCount" validate:"required,min=1"`
}

type hallReservationReq struct {
	EventKind  string `json:"eventKind" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	GuestCount int64  `json:"guestCount" validate:"required,min=1"`
	Note       string `json:"note"`
}

// CreateSeat books seats on an event for the authenticated user.
func (h *ReservationHandler) CreateSeat(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req seatReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	res, ev, err := h.Admissions.AdmitSeatReservation(ctx, uid, req.EventID, req.SeatCount)
	if err != nil {
		return reservationError(c, err)
	}

	h.confirm(c, res, ev)
	return c.JSON(http.StatusCreated, res)
}

// CreateHall books the whole hall for a calendar day.
func (h *ReservationHandler) CreateHall(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req hallReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	res, err := h.Admissions.AdmitHallReservation(ctx, uid, req.EventKind, req.Date, req.GuestCount, req.Note)
	if err != nil {
		return reservationError(c, err)
	}

	h.confirm(c, res, nil)
	return c.JSON(http.StatusCreated, res)
}

// ListMine returns the authenticated user's reservations, oldest first.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Queries.ListMine(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, list)
}

// ListAll returns every reservation partitioned by kind.  Admin only.
func (h *ReservationHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	all, err := h.Queries.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, all)
}

// ListHallDates returns the calendar days already claimed by a hall
// booking, so booking forms can grey them out.  Public.
func (h *ReservationHandler) ListHallDates(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	dates, err := h.Queries.ListTakenHallDates(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, dates)
}

// confirm publishes a best-effort confirmation; the reservation is
// already committed, so a broker failure only costs the notification.
func (h *ReservationHandler) confirm(c echo.Context, res *model.Reservation, ev *model.Event) {
	msg := queue.ReservationConfirmedEvent{
		ReservationID: res.ID,
		Kind:          res.Kind,
		OwnerID:       res.OwnerID,
		OwnerEmail:    res.OwnerEmail,
		SeatCount:     res.SeatCount,
		TotalPrice:    res.TotalPrice,
		EventKind:     res.EventKind,
		Date:          res.Date,
		GuestCount:    res.GuestCount,
		ConfirmedAt:   res.CreatedAt.UTC().Format(time.RFC3339),
	}
	if ev != nil {
		msg.EventID = ev.ID
		msg.EventTitle = ev.Title
	}
	if err := queue.PublishReservationConfirmed(c.Request().Context(), msg); err != nil {
		c.Logger().Warnf("confirmation publish failed for reservation %d: %v", res.ID, err)
	}
}

// reservationError translates admission failures into HTTP responses.
func reservationError(c echo.Context, err error) error {
	var capErr *service.InsufficientCapacityError
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrIdentityNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	case errors.Is(err, service.ErrEventNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	case errors.As(err, &capErr):
		return c.JSON(http.StatusConflict, echo.Map{"error": capErr.Error()})
	case errors.Is(err, service.ErrDateAlreadyReserved):
		return c.JSON(http.StatusConflict, echo.Map{"error": "date already reserved"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reservation failed"})
	}
}
