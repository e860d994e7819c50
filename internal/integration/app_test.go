package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/GitJaack/MoviieBooker/internal/app"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GitJaack/MoviieBooker/internal/mailer"
)

type TestApp struct {
	App     *app.Application
	DB      *pgxpool.Pool
	Mailer  *mailer.MockMailer
	Catalog *CatalogStub

	cleanup func()
}

// CatalogStub mimics the TMDB REST API over httptest so catalog calls never
// leave the test process. Hits counts detail lookups to observe caching.
type CatalogStub struct {
	Server *httptest.Server
	Hits   atomic.Int64
}

func newCatalogStub() *CatalogStub {
	stub := &CatalogStub{}

	mux := http.NewServeMux()

	listBody := map[string]any{
		"page":          1,
		"total_pages":   1,
		"total_results": 2,
		"results": []map[string]any{
			{
				"id":           TestMovieId,
				"title":        TestMovieTitle,
				"overview":     TestMovieOverview,
				"poster_path":  TestMoviePoster,
				"release_date": TestMovieRelease,
				"vote_average": TestMovieRating,
			},
			{
				"id":    TestMovieId2,
				"title": TestMovieTitle2,
			},
		},
	}

	writeList := func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(listBody)
	}

	mux.HandleFunc("/movie/popular", writeList)
	mux.HandleFunc("/movie/now_playing", writeList)
	mux.HandleFunc("/search/movie", writeList)

	mux.HandleFunc("/genre/movie/list", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"genres": []map[string]any{
				{"id": 28, "name": "Action"},
				{"id": 878, "name": "Science Fiction"},
			},
		})
	})

	mux.HandleFunc("/movie/", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/movie/"))
		if err != nil {
			http.NotFound(w, r)
			return
		}

		stub.Hits.Add(1)

		switch id {
		case TestMovieId:
			json.NewEncoder(w).Encode(map[string]any{
				"id":           TestMovieId,
				"title":        TestMovieTitle,
				"overview":     TestMovieOverview,
				"poster_path":  TestMoviePoster,
				"release_date": TestMovieRelease,
				"vote_average": TestMovieRating,
				"genres": []map[string]any{
					{"id": 28, "name": "Action"},
					{"id": 878, "name": "Science Fiction"},
				},
			})
		case TestMovieId2:
			json.NewEncoder(w).Encode(map[string]any{
				"id":    TestMovieId2,
				"title": TestMovieTitle2,
			})
		default:
			http.NotFound(w, r)
		}
	})

	stub.Server = httptest.NewServer(mux)

	return stub
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	catalog := newCatalogStub()
	cfg.TMDB.BaseURL = catalog.Server.URL
	cfg.TMDB.APIKey = "test-key"

	mockMailer := mailer.NewMockMailer()

	application, cleanup, err := app.New(cfg, logger, app.WithMailer(mockMailer))
	if err != nil {
		catalog.Server.Close()
		return nil, err
	}

	// separate pool for seeding and assertions
	db, err := pgxpool.New(context.Background(), cfg.DB.DSN)
	if err != nil {
		cleanup()
		catalog.Server.Close()
		return nil, fmt.Errorf("failed to create test db pool: %w", err)
	}

	return &TestApp{
		App:     application,
		DB:      db,
		Mailer:  mockMailer,
		Catalog: catalog,
		cleanup: func() {
			db.Close()
			cleanup()
			catalog.Server.Close()
		},
	}, nil
}

func (a *TestApp) Close() {
	if a.cleanup != nil {
		a.cleanup()
	}
}
