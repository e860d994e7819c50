package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/GitJaack/MoviieBooker/api"
	"github.com/GitJaack/MoviieBooker/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultPage = 1

	movieCacheKeyFormat = "movie:%d"
	movieCacheTTL       = 10 * time.Minute
)

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request) {
	page := readPageParam(r)

	var (
		moviePage *domain.MoviePage
		err       error
	)

	if search := r.URL.Query().Get("search"); search != "" {
		moviePage, err = app.movieCatalog.Search(r.Context(), search, page)
	} else {
		moviePage, err = app.movieCatalog.GetPopular(r.Context(), page)
	}

	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieListResponse(moviePage), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetNowPlayingMovies(w http.ResponseWriter, r *http.Request) {
	page := readPageParam(r)

	moviePage, err := app.movieCatalog.GetNowPlaying(r.Context(), page)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieListResponse(moviePage), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) SearchMovies(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		app.badRequestResponse(w, r, errors.New("title query parameter is required"))
		return
	}

	page := readPageParam(r)

	moviePage, err := app.movieCatalog.Search(r.Context(), title, page)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieListResponse(moviePage), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovieGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := app.movieCatalog.GetGenres(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.GenreListResponse{Genres: make([]api.Genre, 0, len(genres))}

	for _, g := range genres {
		resp.Genres = append(resp.Genres, api.Genre{Id: g.ID, Name: g.Name})
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovieDetails(w http.ResponseWriter, r *http.Request) {
	movieId, err := strconv.Atoi(chi.URLParam(r, "movieId"))
	if err != nil || movieId < 1 {
		app.badRequestResponse(w, r, errors.New("invalid movie ID"))
		return
	}

	movie, err := app.lookupMovie(r.Context(), movieId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiMovie(*movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// lookupMovie fetches a movie from the catalog, going through the Redis cache
// first. Cache failures are logged and treated as misses so the catalog stays
// reachable when Redis is down.
func (app *Application) lookupMovie(ctx context.Context, movieId int) (*domain.Movie, error) {
	cacheKey := fmt.Sprintf(movieCacheKeyFormat, movieId)

	cached, err := app.redis.Get(ctx, cacheKey).Result()
	if err == nil {
		var movie domain.Movie

		if err := json.Unmarshal([]byte(cached), &movie); err == nil {
			return &movie, nil
		}

		app.logger.Warn("failed to decode cached movie", "key", cacheKey, "error", err)
	} else if !errors.Is(err, redis.Nil) {
		app.logger.Warn("failed to read movie from cache", "key", cacheKey, "error", err)
	}

	movie, err := app.movieCatalog.GetMovieById(ctx, movieId)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(movie)
	if err == nil {
		if err := app.redis.Set(ctx, cacheKey, payload, movieCacheTTL).Err(); err != nil {
			app.logger.Warn("failed to cache movie", "key", cacheKey, "error", err)
		}
	}

	return movie, nil
}

func readPageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return DefaultPage
	}

	return page
}

func toMovieListResponse(page *domain.MoviePage) api.MovieListResponse {
	resp := api.MovieListResponse{
		Results:      make([]api.Movie, 0, len(page.Movies)),
		Page:         page.Page,
		TotalPages:   page.TotalPages,
		TotalResults: page.TotalResults,
	}

	for _, m := range page.Movies {
		resp.Results = append(resp.Results, toApiMovie(m))
	}

	return resp
}

func toApiMovie(m domain.Movie) api.Movie {
	return api.Movie{
		Id:          m.ID,
		Title:       m.Title,
		Overview:    m.Overview,
		PosterPath:  m.PosterPath,
		ReleaseDate: m.ReleaseDate,
		VoteAverage: m.VoteAverage,
		GenreIds:    m.GenreIds,
	}
}
