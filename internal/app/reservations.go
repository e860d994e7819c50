package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/GitJaack/MoviieBooker/api"
	"github.com/GitJaack/MoviieBooker/internal/domain"
	"github.com/go-chi/chi/v5"
)

func (app *Application) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req api.ReservationRequest

	err := app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	// The session may outlive the account, so confirm the user still exists
	// before touching the catalog.
	_, err = app.userRepo.GetById(r.Context(), userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	movie, err := app.lookupMovie(r.Context(), req.MovieId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	start, end := domain.BookingWindow(req.StartTime)

	if start.Before(app.now().Add(domain.MinBookingLead)) {
		app.badRequestResponse(w, r, fmt.Errorf(
			"reservations must be made at least %v ahead of the showing start time", domain.MinBookingLead))
		return
	}

	reservation := domain.Reservation{
		UserID:     userId,
		MovieID:    movie.ID,
		MovieTitle: movie.Title,
		StartTime:  start,
		EndTime:    end,
	}

	err = app.reservationRepo.Create(r.Context(), &reservation)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrReservationConflict):
			app.conflictResponse(w, r, "You already have a reservation overlapping this time slot")
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toReservationResponse(reservation), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetUserReservations(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	_, err := app.userRepo.GetById(r.Context(), userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	reservations, err := app.reservationRepo.GetAllByUserId(r.Context(), userId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.UserReservationsResponse{
		Reservations: make([]api.ReservationResponse, 0, len(reservations)),
	}

	for _, reservation := range reservations {
		resp.Reservations = append(resp.Reservations, toReservationResponse(reservation))
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelReservation(w http.ResponseWriter, r *http.Request) {
	reservationId, err := strconv.Atoi(chi.URLParam(r, "reservationId"))
	if err != nil || reservationId < 1 {
		app.badRequestResponse(w, r, errors.New("invalid reservation ID"))
		return
	}

	userId := app.contextGetUserId(r)

	// Scoping the delete to the session user makes someone else's reservation
	// indistinguishable from a missing one.
	err = app.reservationRepo.DeleteByIdAndUserId(r.Context(), reservationId, userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.MessageResponse{Message: "Reservation successfully cancelled"}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toReservationResponse(r domain.Reservation) api.ReservationResponse {
	return api.ReservationResponse{
		Id:         r.ID,
		UserId:     r.UserID,
		MovieId:    r.MovieID,
		MovieTitle: r.MovieTitle,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		CreatedAt:  r.CreatedAt,
	}
}
