package rest

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pollhub/pollhub_api/internal/model"
	"github.com/pollhub/pollhub_api/util"
	"github.com/pollhub/pollhub_api/util/values"
)

// isUniqueViolation reports whether err is the Postgres unique-constraint
// error (code 23505).
func isUniqueViolation(err error) bool {
	pgErr, ok := err.(*pgconn.PgError)
	return ok && pgErr.Code == "23505"
}

// canSeeFull decides whether the caller gets the full projection. Only the
// owner and admins see the owner id and vote tallies.
func canSeeFull(ownerID, callerID uuid.UUID, role string) bool {
	if role == values.RoleAdmin {
		return true
	}
	return callerID != uuid.Nil && callerID == ownerID
}

// ProjectPoll shapes a poll for the given caller. This runs on every read;
// role and ownership may have changed since the last request.
func ProjectPoll(poll model.Poll, options []model.OptionFull, callerID uuid.UUID, role string) interface{} {
	if canSeeFull(poll.OwnerID, callerID, role) {
		return model.PollFull{
			ID:        poll.ID,
			Question:  poll.Question,
			OwnerID:   poll.OwnerID,
			Options:   options,
			CreatedAt: poll.CreatedAt,
			UpdatedAt: poll.UpdatedAt,
		}
	}

	public := make([]model.OptionPublic, len(options))
	for i, opt := range options {
		public[i] = model.OptionPublic{
			ID:       opt.ID,
			Text:     opt.Text,
			Position: opt.Position,
		}
	}
	return model.PollPublic{
		ID:        poll.ID,
		Question:  poll.Question,
		Options:   public,
		CreatedAt: poll.CreatedAt,
		UpdatedAt: poll.UpdatedAt,
	}
}

func (api *API) CreatePollHelper(ctx context.Context, ownerID uuid.UUID, req model.CreatePollRequest) (model.PollFull, string, string, error) {
	question, err := util.ValidateQuestion(req.Question)
	if err != nil {
		return model.PollFull{}, values.Unprocessable, err.Error(), nil
	}

	options, err := util.ValidateOptions(req.Options)
	if err != nil {
		return model.PollFull{}, values.Unprocessable, err.Error(), nil
	}

	poll := model.Poll{
		ID:       util.GenerateUUID(),
		Question: question,
		OwnerID:  ownerID,
	}

	if err := api.CreatePollRepo(ctx, poll, options); err != nil {
		if isUniqueViolation(err) {
			return model.PollFull{}, values.Conflict, values.MsgDuplicateOptions, nil
		}
		return model.PollFull{}, values.Error, "Failed to create poll", err
	}

	created, err := api.GetPollRepo(ctx, poll.ID)
	if err != nil {
		return model.PollFull{}, values.Error, "Failed to load created poll", err
	}
	opts, err := api.GetPollOptionsRepo(ctx, poll.ID)
	if err != nil {
		return model.PollFull{}, values.Error, "Failed to load created poll", err
	}

	full := model.PollFull{
		ID:        created.ID,
		Question:  created.Question,
		OwnerID:   created.OwnerID,
		Options:   opts,
		CreatedAt: created.CreatedAt,
		UpdatedAt: created.UpdatedAt,
	}
	return full, values.Created, "Poll created successfully", nil
}

func (api *API) GetPollHelper(ctx context.Context, pollID uuid.UUID, callerID uuid.UUID, role string) (interface{}, string, string, error) {
	poll, err := api.GetPollRepo(ctx, pollID)
	if err != nil {
		if err == ErrPollNotFound {
			return nil, values.NotFound, "Poll not found", nil
		}
		return nil, values.Error, "Failed to get poll", err
	}

	options, err := api.GetPollOptionsRepo(ctx, poll.ID)
	if err != nil {
		return nil, values.Error, "Failed to get poll options", err
	}

	return ProjectPoll(poll, options, callerID, role), values.Success, "Poll returned successfully", nil
}

func (api *API) ListPollsHelper(ctx context.Context, callerID uuid.UUID, role string) ([]interface{}, string, string, error) {
	polls, err := api.ListPollsRepo(ctx)
	if err != nil {
		return nil, values.Error, "Failed to list polls", err
	}
	return api.projectPolls(ctx, polls, callerID, role)
}

func (api *API) ListMyPollsHelper(ctx context.Context, callerID uuid.UUID) ([]interface{}, string, string, error) {
	polls, err := api.ListPollsByOwnerRepo(ctx, callerID)
	if err != nil {
		return nil, values.Error, "Failed to list polls", err
	}
	return api.projectPolls(ctx, polls, callerID, values.RoleUser)
}

func (api *API) projectPolls(ctx context.Context, polls []model.Poll, callerID uuid.UUID, role string) ([]interface{}, string, string, error) {
	projected := make([]interface{}, 0, len(polls))
	for _, poll := range polls {
		options, err := api.GetPollOptionsRepo(ctx, poll.ID)
		if err != nil {
			return nil, values.Error, "Failed to get poll options", err
		}
		projected = append(projected, ProjectPoll(poll, options, callerID, role))
	}
	return projected, values.Success, "Polls returned successfully", nil
}

func (api *API) UpdatePollHelper(ctx context.Context, pollID, callerID uuid.UUID, req model.UpdatePollRequest) (model.PollFull, string, string, error) {
	question, err := util.ValidateQuestion(req.Question)
	if err != nil {
		return model.PollFull{}, values.Unprocessable, err.Error(), nil
	}

	options, err := util.ValidateOptions(req.Options)
	if err != nil {
		return model.PollFull{}, values.Unprocessable, err.Error(), nil
	}

	poll, err := api.GetPollRepo(ctx, pollID)
	if err != nil {
		if err == ErrPollNotFound {
			return model.PollFull{}, values.NotFound, "Poll not found", nil
		}
		return model.PollFull{}, values.Error, "Failed to get poll", err
	}
	if poll.OwnerID != callerID {
		return model.PollFull{}, values.NotAllowed, "You do not own this poll", nil
	}

	if err := api.UpdatePollRepo(ctx, pollID, callerID, question, options); err != nil {
		if err == ErrPollNotFound {
			return model.PollFull{}, values.NotAllowed, "You do not own this poll", nil
		}
		if isUniqueViolation(err) {
			return model.PollFull{}, values.Conflict, values.MsgDuplicateOptions, nil
		}
		return model.PollFull{}, values.Error, "Failed to update poll", err
	}

	updated, err := api.GetPollRepo(ctx, pollID)
	if err != nil {
		return model.PollFull{}, values.Error, "Failed to load updated poll", err
	}
	opts, err := api.GetPollOptionsRepo(ctx, pollID)
	if err != nil {
		return model.PollFull{}, values.Error, "Failed to load updated poll", err
	}

	full := model.PollFull{
		ID:        updated.ID,
		Question:  updated.Question,
		OwnerID:   updated.OwnerID,
		Options:   opts,
		CreatedAt: updated.CreatedAt,
		UpdatedAt: updated.UpdatedAt,
	}
	return full, values.Success, "Poll updated successfully", nil
}

func (api *API) DeletePollHelper(ctx context.Context, pollID, callerID uuid.UUID) (string, string, error) {
	poll, err := api.GetPollRepo(ctx, pollID)
	if err != nil {
		if err == ErrPollNotFound {
			return values.NotFound, "Poll not found", nil
		}
		return values.Error, "Failed to get poll", err
	}
	if poll.OwnerID != callerID {
		return values.NotAllowed, "You do not own this poll", nil
	}

	if err := api.DeletePollRepo(ctx, pollID, callerID); err != nil {
		if err == ErrPollNotFound {
			return values.NotAllowed, "You do not own this poll", nil
		}
		return values.Error, "Failed to delete poll", err
	}
	return values.Success, "Poll deleted successfully", nil
}

// SubmitVoteHelper is the two-step vote guard. The existence check turns the
// common case into a friendly conflict before any write; the votes table's
// unique (poll_id, user_id) constraint is the source of truth, so a racing
// insert that slips past the check surfaces as the same duplicate-vote
// message, never a generic failure.
func (api *API) SubmitVoteHelper(ctx context.Context, pollID, callerID, optionID uuid.UUID) (string, string, error) {
	if _, err := api.GetPollRepo(ctx, pollID); err != nil {
		if err == ErrPollNotFound {
			return values.NotFound, "Poll not found", nil
		}
		return values.Error, "Failed to get poll", err
	}

	belongs, err := api.OptionBelongsToPollRepo(ctx, optionID, pollID)
	if err != nil {
		return values.Error, "Failed to check option", err
	}
	if !belongs {
		return values.Unprocessable, "Option does not belong to this poll", nil
	}

	voted, err := api.HasVotedRepo(ctx, pollID, callerID)
	if err != nil {
		return values.Error, "Failed to check existing vote", err
	}
	if voted {
		return values.Conflict, values.MsgDuplicateVote, nil
	}

	vote := model.Vote{
		ID:       util.GenerateUUID(),
		PollID:   pollID,
		OptionID: optionID,
		UserID:   callerID,
	}
	if err := api.InsertVoteRepo(ctx, vote); err != nil {
		if isUniqueViolation(err) {
			return values.Conflict, values.MsgDuplicateVote, nil
		}
		return values.Error, "Failed to submit vote", err
	}

	return values.Success, "Vote submitted successfully", nil
}
