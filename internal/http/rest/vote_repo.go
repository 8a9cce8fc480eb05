package rest

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/pollhub/pollhub_api/internal/model"
)

func (api *API) HasVotedRepo(ctx context.Context, pollID, userID uuid.UUID) (bool, error) {
	var exists bool
	stmt := `SELECT EXISTS(SELECT 1 FROM votes WHERE poll_id = $1 AND user_id = $2)`

	err := api.DB.QueryRow(ctx, stmt, pollID, userID).Scan(&exists)
	if err != nil {
		log.Println("error checking existing vote", err)
		return false, err
	}
	return exists, nil
}

func (api *API) OptionBelongsToPollRepo(ctx context.Context, optionID, pollID uuid.UUID) (bool, error) {
	var exists bool
	stmt := `SELECT EXISTS(SELECT 1 FROM poll_options WHERE id = $1 AND poll_id = $2)`

	err := api.DB.QueryRow(ctx, stmt, optionID, pollID).Scan(&exists)
	if err != nil {
		log.Println("error checking option", err)
		return false, err
	}
	return exists, nil
}

func (api *API) InsertVoteRepo(ctx context.Context, vote model.Vote) error {
	stmt := `
        INSERT INTO votes (id, poll_id, option_id, user_id)
        VALUES ($1, $2, $3, $4)
    `
	_, err := api.DB.Exec(ctx, stmt, vote.ID, vote.PollID, vote.OptionID, vote.UserID)
	return err
}
