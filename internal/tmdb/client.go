// Package tmdb implements the movie catalog against The Movie Database REST
// API (https://developer.themoviedb.org/reference).
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/GitJaack/MoviieBooker/internal/domain"
)

const DefaultBaseURL = "https://api.themoviedb.org/3"

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type movieResult struct {
	Id          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	GenreIds    []int   `json:"genre_ids"`
}

type movieListResult struct {
	Page         int           `json:"page"`
	Results      []movieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

type movieDetailResult struct {
	Id          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	Genres      []struct {
		Id   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

type genreListResult struct {
	Genres []struct {
		Id   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

func (c *Client) GetMovieById(ctx context.Context, id int) (*domain.Movie, error) {
	var result movieDetailResult

	err := c.get(ctx, "/movie/"+strconv.Itoa(id), nil, &result)
	if err != nil {
		return nil, err
	}

	movie := domain.Movie{
		ID:          result.Id,
		Title:       result.Title,
		Overview:    result.Overview,
		PosterPath:  result.PosterPath,
		ReleaseDate: result.ReleaseDate,
		VoteAverage: result.VoteAverage,
	}

	for _, genre := range result.Genres {
		movie.GenreIds = append(movie.GenreIds, genre.Id)
	}

	return &movie, nil
}

func (c *Client) GetNowPlaying(ctx context.Context, page int) (*domain.MoviePage, error) {
	return c.getMovieList(ctx, "/movie/now_playing", page)
}

func (c *Client) GetPopular(ctx context.Context, page int) (*domain.MoviePage, error) {
	return c.getMovieList(ctx, "/movie/popular", page)
}

// Search returns matches for the query with results ordered by title,
// case-insensitively, within the page.
func (c *Client) Search(ctx context.Context, query string, page int) (*domain.MoviePage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))

	var result movieListResult

	err := c.get(ctx, "/search/movie", params, &result)
	if err != nil {
		return nil, err
	}

	moviePage := toMoviePage(result)

	sort.SliceStable(moviePage.Movies, func(i, j int) bool {
		return strings.ToLower(moviePage.Movies[i].Title) < strings.ToLower(moviePage.Movies[j].Title)
	})

	return moviePage, nil
}

func (c *Client) GetGenres(ctx context.Context) ([]domain.Genre, error) {
	var result genreListResult

	err := c.get(ctx, "/genre/movie/list", nil, &result)
	if err != nil {
		return nil, err
	}

	genres := make([]domain.Genre, 0, len(result.Genres))
	for _, genre := range result.Genres {
		genres = append(genres, domain.Genre{ID: genre.Id, Name: genre.Name})
	}

	return genres, nil
}

func (c *Client) getMovieList(ctx context.Context, path string, page int) (*domain.MoviePage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	var result movieListResult

	err := c.get(ctx, path, params, &result)
	if err != nil {
		return nil, err
	}

	return toMoviePage(result), nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dst any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("language", "en-US")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrRecordNotFound
	case resp.StatusCode >= 400:
		return fmt.Errorf("tmdb: unexpected status %d for GET %s", resp.StatusCode, path)
	}

	return json.NewDecoder(resp.Body).Decode(dst)
}

func toMoviePage(result movieListResult) *domain.MoviePage {
	page := domain.MoviePage{
		Page:         result.Page,
		TotalPages:   result.TotalPages,
		TotalResults: result.TotalResults,
		Movies:       make([]domain.Movie, 0, len(result.Results)),
	}

	for _, m := range result.Results {
		page.Movies = append(page.Movies, domain.Movie{
			ID:          m.Id,
			Title:       m.Title,
			Overview:    m.Overview,
			PosterPath:  m.PosterPath,
			ReleaseDate: m.ReleaseDate,
			VoteAverage: m.VoteAverage,
			GenreIds:    m.GenreIds,
		})
	}

	return &page
}
