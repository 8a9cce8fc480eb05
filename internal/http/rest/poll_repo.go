package rest

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/pollhub/pollhub_api/internal/model"
	"github.com/pollhub/pollhub_api/util"
)

var ErrPollNotFound = errors.New("poll not found")

// CreatePollRepo inserts the poll and its options in one transaction so a
// poll row never exists without at least its two options.
func (api *API) CreatePollRepo(ctx context.Context, poll model.Poll, options []string) error {
	return api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		stmt := `
            INSERT INTO polls (id, question, owner_id)
            VALUES ($1, $2, $3)
        `
		if _, err := tx.Exec(ctx, stmt, poll.ID, poll.Question, poll.OwnerID); err != nil {
			return err
		}

		return insertOptionsTx(ctx, tx, poll.ID, options)
	})
}

func insertOptionsTx(ctx context.Context, tx pgx.Tx, pollID uuid.UUID, options []string) error {
	stmt := `
        INSERT INTO poll_options (id, poll_id, text, position)
        VALUES ($1, $2, $3, $4)
    `
	for i, text := range options {
		if _, err := tx.Exec(ctx, stmt, util.GenerateUUID(), pollID, text, i); err != nil {
			return err
		}
	}
	return nil
}

func (api *API) GetPollRepo(ctx context.Context, pollID uuid.UUID) (model.Poll, error) {
	var poll model.Poll
	stmt := `SELECT id, question, owner_id, created_at, updated_at FROM polls WHERE id = $1`

	err := api.DB.QueryRow(ctx, stmt, pollID).Scan(
		&poll.ID,
		&poll.Question,
		&poll.OwnerID,
		&poll.CreatedAt,
		&poll.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.Poll{}, ErrPollNotFound
		}
		return model.Poll{}, err
	}
	return poll, nil
}

// GetPollOptionsRepo returns a poll's options with their tallies. Counts are
// derived here rather than kept in a counter column; the votes table is the
// single source of truth.
func (api *API) GetPollOptionsRepo(ctx context.Context, pollID uuid.UUID) ([]model.OptionFull, error) {
	stmt := `
        SELECT o.id, o.text, o.position, COUNT(v.id)
        FROM poll_options o
        LEFT JOIN votes v ON v.option_id = o.id
        WHERE o.poll_id = $1
        GROUP BY o.id, o.text, o.position
        ORDER BY o.position`

	rows, err := api.DB.Query(ctx, stmt, pollID)
	if err != nil {
		log.Println("error getting poll options", err)
		return nil, err
	}
	defer rows.Close()

	var options []model.OptionFull
	for rows.Next() {
		var opt model.OptionFull
		if err := rows.Scan(&opt.ID, &opt.Text, &opt.Position, &opt.Votes); err != nil {
			return nil, err
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}

func (api *API) ListPollsRepo(ctx context.Context) ([]model.Poll, error) {
	stmt := `SELECT id, question, owner_id, created_at, updated_at FROM polls ORDER BY created_at DESC`
	return api.queryPolls(ctx, stmt)
}

func (api *API) ListPollsByOwnerRepo(ctx context.Context, ownerID uuid.UUID) ([]model.Poll, error) {
	stmt := `SELECT id, question, owner_id, created_at, updated_at FROM polls WHERE owner_id = $1 ORDER BY created_at DESC`
	return api.queryPolls(ctx, stmt, ownerID)
}

func (api *API) queryPolls(ctx context.Context, stmt string, args ...interface{}) ([]model.Poll, error) {
	rows, err := api.DB.Query(ctx, stmt, args...)
	if err != nil {
		log.Println("error listing polls", err)
		return nil, err
	}
	defer rows.Close()

	var polls []model.Poll
	for rows.Next() {
		var poll model.Poll
		if err := rows.Scan(&poll.ID, &poll.Question, &poll.OwnerID, &poll.CreatedAt, &poll.UpdatedAt); err != nil {
			return nil, err
		}
		polls = append(polls, poll)
	}
	return polls, rows.Err()
}

// UpdatePollRepo rewrites the question and replaces the option set. The
// owner filter in the UPDATE is deliberate: ownership is checked by the
// helper first, but the SQL re-filters so this layer is never the sole gate.
// Replacing the options cascades away the votes that referenced them.
func (api *API) UpdatePollRepo(ctx context.Context, pollID, ownerID uuid.UUID, question string, options []string) error {
	return api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		stmt := `UPDATE polls SET question = $1, updated_at = NOW() WHERE id = $2 AND owner_id = $3`

		result, err := tx.Exec(ctx, stmt, question, pollID, ownerID)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return ErrPollNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM poll_options WHERE poll_id = $1`, pollID); err != nil {
			return err
		}

		return insertOptionsTx(ctx, tx, pollID, options)
	})
}

func (api *API) DeletePollRepo(ctx context.Context, pollID, ownerID uuid.UUID) error {
	stmt := `DELETE FROM polls WHERE id = $1 AND owner_id = $2`

	result, err := api.DB.Exec(ctx, stmt, pollID, ownerID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrPollNotFound
	}
	return nil
}

// AdminDeletePollRepo removes any poll regardless of owner. Only reachable
// behind RequireAdmin.
func (api *API) AdminDeletePollRepo(ctx context.Context, pollID uuid.UUID) error {
	stmt := `DELETE FROM polls WHERE id = $1`

	result, err := api.DB.Exec(ctx, stmt, pollID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrPollNotFound
	}
	return nil
}
