package rest

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/pollhub/pollhub_api/internal/model"
	"github.com/pollhub/pollhub_api/util/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePoll(owner uuid.UUID) (model.Poll, []model.OptionFull) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	poll := model.Poll{
		ID:        uuid.MustParse("0b38e8a2-4b42-4a6d-9c5d-0f6f2c40f111"),
		Question:  "Where should we get lunch?",
		OwnerID:   owner,
		CreatedAt: now,
		UpdatedAt: now,
	}
	options := []model.OptionFull{
		{ID: uuid.MustParse("5a1a42de-6e24-4a7a-8f5d-0f6f2c40f222"), Text: "Tacos", Position: 0, Votes: 3},
		{ID: uuid.MustParse("9c7be0a8-12f1-4f3f-b8a3-0f6f2c40f333"), Text: "Pizza", Position: 1, Votes: 1},
	}
	return poll, options
}

func TestProjectPollOwnerSeesFull(t *testing.T) {
	owner := uuid.MustParse("c1a9b3d4-0000-4000-8000-000000000001")
	poll, options := samplePoll(owner)

	projected := ProjectPoll(poll, options, owner, values.RoleUser)

	full, ok := projected.(model.PollFull)
	require.True(t, ok, "owner must get the full projection")
	assert.Equal(t, owner, full.OwnerID)
	assert.Equal(t, 3, full.Options[0].Votes)
}

func TestProjectPollAdminSeesFull(t *testing.T) {
	owner := uuid.MustParse("c1a9b3d4-0000-4000-8000-000000000001")
	admin := uuid.MustParse("c1a9b3d4-0000-4000-8000-000000000002")
	poll, options := samplePoll(owner)

	projected := ProjectPoll(poll, options, admin, values.RoleAdmin)

	_, ok := projected.(model.PollFull)
	assert.True(t, ok, "admin must get the full projection")
}

func TestProjectPollStrangerSeesPublic(t *testing.T) {
	owner := uuid.MustParse("c1a9b3d4-0000-4000-8000-000000000001")
	stranger := uuid.MustParse("c1a9b3d4-0000-4000-8000-000000000003")
	poll, options := samplePoll(owner)

	projected := ProjectPoll(poll, options, stranger, values.RoleUser)

	public, ok := projected.(model.PollPublic)
	require.True(t, ok, "non-owner must get the public projection")
	assert.Equal(t, poll.Question, public.Question)
	assert.Len(t, public.Options, 2)
	assert.Equal(t, "Tacos", public.Options[0].Text)
}

func TestProjectPollAnonymousSeesPublic(t *testing.T) {
	owner := uuid.MustParse("c1a9b3d4-0000-4000-8000-000000000001")
	poll, options := samplePoll(owner)

	projected := ProjectPoll(poll, options, uuid.Nil, values.RoleUser)

	_, ok := projected.(model.PollPublic)
	assert.True(t, ok, "anonymous caller must get the public projection")
}

func TestCanSeeFull(t *testing.T) {
	owner := uuid.MustParse("c1a9b3d4-0000-4000-8000-000000000001")
	other := uuid.MustParse("c1a9b3d4-0000-4000-8000-000000000002")

	testCases := []struct {
		name     string
		callerID uuid.UUID
		role     string
		want     bool
	}{
		{"Owner", owner, values.RoleUser, true},
		{"Admin Non-Owner", other, values.RoleAdmin, true},
		{"Stranger", other, values.RoleUser, false},
		{"Anonymous", uuid.Nil, values.RoleUser, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := canSeeFull(owner, tc.callerID, tc.role); got != tc.want {
				t.Errorf("canSeeFull(owner, %v, %q) = %v, want %v", tc.callerID, tc.role, got, tc.want)
			}
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505", ConstraintName: "votes_poll_id_user_id_key"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
	assert.False(t, isUniqueViolation(nil))
}
