package mocks

import (
	"context"

	"github.com/GitJaack/MoviieBooker/internal/domain"
)

type MockMovieCatalog struct {
	domain.MovieCatalog
	GetMovieByIdFunc  func(ctx context.Context, id int) (*domain.Movie, error)
	GetNowPlayingFunc func(ctx context.Context, page int) (*domain.MoviePage, error)
	GetPopularFunc    func(ctx context.Context, page int) (*domain.MoviePage, error)
	SearchFunc        func(ctx context.Context, query string, page int) (*domain.MoviePage, error)
	GetGenresFunc     func(ctx context.Context) ([]domain.Genre, error)
}

func (m *MockMovieCatalog) GetMovieById(ctx context.Context, id int) (*domain.Movie, error) {
	return m.GetMovieByIdFunc(ctx, id)
}

func (m *MockMovieCatalog) GetNowPlaying(ctx context.Context, page int) (*domain.MoviePage, error) {
	return m.GetNowPlayingFunc(ctx, page)
}

func (m *MockMovieCatalog) GetPopular(ctx context.Context, page int) (*domain.MoviePage, error) {
	return m.GetPopularFunc(ctx, page)
}

func (m *MockMovieCatalog) Search(ctx context.Context, query string, page int) (*domain.MoviePage, error) {
	return m.SearchFunc(ctx, query, page)
}

func (m *MockMovieCatalog) GetGenres(ctx context.Context) ([]domain.Genre, error) {
	return m.GetGenresFunc(ctx)
}
