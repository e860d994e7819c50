package domain

import "context"

// Movie is a snapshot of a catalog entry. Reservations denormalize the title
// at booking time, so a later catalog change never rewrites existing records.
type Movie struct {
	ID          int
	Title       string
	Overview    string
	PosterPath  string
	ReleaseDate string
	VoteAverage float64
	GenreIds    []int
}

type MoviePage struct {
	Page         int
	TotalPages   int
	TotalResults int
	Movies       []Movie
}

type Genre struct {
	ID   int
	Name string
}

// MovieCatalog is the external movie directory. GetMovieById returns
// ErrRecordNotFound when the catalog has no such movie; transient catalog
// failures surface as plain errors.
type MovieCatalog interface {
	GetMovieById(ctx context.Context, id int) (*Movie, error)
	GetNowPlaying(ctx context.Context, page int) (*MoviePage, error)
	GetPopular(ctx context.Context, page int) (*MoviePage, error)
	Search(ctx context.Context, query string, page int) (*MoviePage, error)
	GetGenres(ctx context.Context) ([]Genre, error)
}
