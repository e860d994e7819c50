package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GitJaack/MoviieBooker/internal/domain"
	"github.com/GitJaack/MoviieBooker/internal/mailer"
	"github.com/GitJaack/MoviieBooker/internal/repository"
	"github.com/GitJaack/MoviieBooker/internal/tmdb"
	appvalidator "github.com/GitJaack/MoviieBooker/internal/validator"
	"github.com/GitJaack/MoviieBooker/internal/vcs"
	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
)

var (
	version = vcs.Version()
)

const serviceName = "moviiebooker-api"

type Application struct {
	config         Config
	logger         *slog.Logger
	db             *pgxpool.Pool
	redis          redis.UniversalClient
	validator      *validator.Validate
	mailer         mailer.Mailer
	sessionManager *scs.SessionManager
	now            func() time.Time

	userRepo        domain.UserRepository
	reservationRepo domain.ReservationRepository
	movieCatalog    domain.MovieCatalog
}

type Config struct {
	Port             int
	Env              string
	DB               DBConfig
	Redis            RedisConfig
	SMTP             SMTPConfig
	TMDB             TMDBConfig
	OtelCollectorUrl string
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
	AutoMigrate  bool
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type TMDBConfig struct {
	BaseURL string
	APIKey  string
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")
	flag.BoolVar(&cfg.DB.AutoMigrate, "db-migrate", false, "Apply database migrations on startup")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.SMTP.Host, "smtp-host", "sandbox.smtp.mailtrap.io", "SMTP host")
	flag.IntVar(&cfg.SMTP.Port, "smtp-port", 2525, "SMTP port")
	flag.StringVar(&cfg.SMTP.Username, "smtp-username", "", "SMTP username")
	flag.StringVar(&cfg.SMTP.Password, "smtp-password", "", "SMTP password")
	flag.StringVar(&cfg.SMTP.Sender, "smtp-sender", "MoviieBooker <no-reply@moviiebooker.net>", "SMTP sender")

	flag.StringVar(&cfg.TMDB.BaseURL, "tmdb-base-url", tmdb.DefaultBaseURL, "TMDB API base URL")
	flag.StringVar(&cfg.TMDB.APIKey, "tmdb-api-key", os.Getenv("TMDB_API_KEY"), "TMDB API key")

	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector URL")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	app, cleanup, err := New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		return err
	}
	defer cleanup()

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	return app.serve()
}

// Option overrides a collaborator after the default wiring, used by tests to
// substitute doubles.
type Option func(*Application)

func WithMailer(m mailer.Mailer) Option {
	return func(app *Application) {
		app.mailer = m
	}
}

func WithMovieCatalog(c domain.MovieCatalog) Option {
	return func(app *Application) {
		app.movieCatalog = c
	}
}

func New(cfg Config, logger *slog.Logger, opts ...Option) (*Application, func(), error) {
	db, err := newDatabasePool(cfg)
	if err != nil {
		return nil, nil, err
	}

	if cfg.DB.AutoMigrate {
		err = runMigrations(cfg.DB.DSN)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
	}

	redisClient, err := newRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	app := &Application{
		config:          cfg,
		logger:          logger,
		db:              db,
		redis:           redisClient,
		validator:       appvalidator.NewValidator(),
		mailer:          mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender),
		sessionManager:  newSessionManager(redisClient),
		now:             time.Now,
		userRepo:        repository.NewPostgresUserRepository(db),
		reservationRepo: repository.NewPostgresReservationRepository(db),
		movieCatalog:    tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.APIKey),
	}

	for _, opt := range opts {
		opt(app)
	}

	cleanup := func() {
		redisClient.Close()
		db.Close()
	}

	return app, cleanup, nil
}

func newSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"

	return sessionManager
}

func newRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	if cfg.OtelCollectorUrl != "" {
		err := redisotel.InstrumentTracing(rdb)
		if err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func newDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)

	if cfg.OtelCollectorUrl != "" {
		config.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(app.recoverPanic)
	r.Use(app.requestLogger)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/health", app.GetHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", app.RegisterUser)
		r.Post("/login", app.Login)
		r.Post("/logout", app.Logout)
	})

	r.Route("/movies", func(r chi.Router) {
		r.Get("/", app.GetMovies)
		r.Get("/now-playing", app.GetNowPlayingMovies)
		r.Get("/search", app.SearchMovies)
		r.Get("/genres", app.GetMovieGenres)
		r.Get("/{movieId}", app.GetMovieDetails)
	})

	r.With(app.requireAuthentication).Route("/users/me", func(r chi.Router) {
		r.Get("/", app.GetCurrentUser)
		r.Delete("/", app.DeleteCurrentUser)
		r.Get("/reservations", app.GetUserReservations)
	})

	r.With(app.requireAuthentication).Route("/reservations", func(r chi.Router) {
		r.Post("/", app.CreateReservation)
		r.Delete("/{reservationId}", app.CancelReservation)
	})

	return r
}
