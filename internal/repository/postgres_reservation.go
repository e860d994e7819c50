package repository

import (
	"context"
	"errors"

	"github.com/GitJaack/MoviieBooker/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresReservationRepository struct {
	db *pgxpool.Pool
}

func NewPostgresReservationRepository(db *pgxpool.Pool) *PostgresReservationRepository {
	return &PostgresReservationRepository{
		db: db,
	}
}

// Create inserts the reservation after checking the user's existing windows
// for overlaps. The check and the insert run in one transaction with the
// user's rows locked, so two concurrent bookings for the same user serialize
// rather than both passing the check. The reservations table also carries an
// exclusion constraint on (user_id, window), which backstops the check and is
// reported as ErrReservationConflict.
func (p *PostgresReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			SELECT id, user_id, movie_id, movie_title, start_time, end_time, created_at
			FROM reservations
			WHERE user_id = $1
			FOR UPDATE
		`

		rows, err := tx.Query(ctx, query, reservation.UserID)
		if err != nil {
			return err
		}

		existing, err := collectReservations(rows)
		if err != nil {
			return err
		}

		if conflict := domain.FindConflict(existing, reservation.StartTime, reservation.EndTime); conflict != nil {
			return domain.ErrReservationConflict
		}

		query = `
			INSERT INTO reservations (user_id, movie_id, movie_title, start_time, end_time)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at
		`

		err = tx.QueryRow(
			ctx,
			query,
			reservation.UserID,
			reservation.MovieID,
			reservation.MovieTitle,
			reservation.StartTime,
			reservation.EndTime).Scan(&reservation.ID, &reservation.CreatedAt)

		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
				return domain.ErrReservationConflict
			}

			return err
		}

		return nil
	})
}

func (p *PostgresReservationRepository) GetAllByUserId(ctx context.Context, userId int) ([]domain.Reservation, error) {
	query := `
		SELECT id, user_id, movie_id, movie_title, start_time, end_time, created_at
		FROM reservations
		WHERE user_id = $1
		ORDER BY start_time ASC
	`

	rows, err := p.db.Query(ctx, query, userId)
	if err != nil {
		return nil, err
	}

	return collectReservations(rows)
}

// DeleteByIdAndUserId deletes the reservation only when it belongs to the
// given user. Ownership is part of the predicate, so a foreign reservation id
// is indistinguishable from a nonexistent one.
func (p *PostgresReservationRepository) DeleteByIdAndUserId(ctx context.Context, reservationId, userId int) error {
	query := `DELETE FROM reservations WHERE id = $1 AND user_id = $2`

	tag, err := p.db.Exec(ctx, query, reservationId, userId)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func collectReservations(rows pgx.Rows) ([]domain.Reservation, error) {
	defer rows.Close()

	reservations := make([]domain.Reservation, 0)

	for rows.Next() {
		var reservation domain.Reservation

		err := rows.Scan(
			&reservation.ID,
			&reservation.UserID,
			&reservation.MovieID,
			&reservation.MovieTitle,
			&reservation.StartTime,
			&reservation.EndTime,
			&reservation.CreatedAt,
		)

		if err != nil {
			return nil, err
		}

		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reservations, nil
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}
