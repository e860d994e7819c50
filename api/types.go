// Package api defines the JSON request and response types exposed by the
// MoviieBooker HTTP API. Movie payloads keep the TMDB field names so the
// frontend can consume proxied catalog responses unchanged.
package api

import "time"

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserId  int    `json:"userId"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AlreadyLoggedInResponse struct {
	Message string `json:"message"`
}

type UserResponse struct {
	Id        int       `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type ReservationRequest struct {
	MovieId   int       `json:"movieId" validate:"required,min=1"`
	StartTime time.Time `json:"startTime" validate:"required"`
}

type ReservationResponse struct {
	Id         int       `json:"id"`
	UserId     int       `json:"userId"`
	MovieId    int       `json:"movieId"`
	MovieTitle string    `json:"movieTitle"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	CreatedAt  time.Time `json:"createdAt"`
}

type UserReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Movie mirrors the TMDB movie summary shape.
type Movie struct {
	Id          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	GenreIds    []int   `json:"genre_ids,omitempty"`
}

type MovieListResponse struct {
	Results      []Movie `json:"results"`
	Page         int     `json:"page"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

type Genre struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

type GenreListResponse struct {
	Genres []Genre `json:"genres"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}
