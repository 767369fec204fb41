package comment_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/critiq-app/critiq/internal/core/comment"
	"github.com/critiq-app/critiq/internal/platform/apperr"
	"github.com/critiq-app/critiq/internal/platform/sec"
	"github.com/critiq-app/critiq/pkg/pointer"
)

// # Fakes

type reviewKey struct {
	titleID  int64
	reviewID int64
}

type fakeReviewChecker struct {
	known map[reviewKey]bool
}

func (checker *fakeReviewChecker) Exists(_ context.Context, titleID, reviewID int64) (bool, error) {
	return checker.known[reviewKey{titleID, reviewID}], nil
}

type fakeRepository struct {
	comments map[int64]*comment.Comment
	nextID   int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{comments: make(map[int64]*comment.Comment)}
}

func (repo *fakeRepository) ListByReview(_ context.Context, reviewID int64, _, _ int) ([]comment.Comment, int, error) {
	out := make([]comment.Comment, 0)
	for _, c := range repo.comments {
		if c.ReviewID == reviewID {
			out = append(out, *c)
		}
	}
	return out, len(out), nil
}

func (repo *fakeRepository) GetByID(_ context.Context, reviewID, commentID int64) (*comment.Comment, error) {
	c, ok := repo.comments[commentID]
	if !ok || c.ReviewID != reviewID {
		return nil, apperr.NotFound("Comment")
	}
	copied := *c
	return &copied, nil
}

func (repo *fakeRepository) Create(_ context.Context, c *comment.Comment) error {
	repo.nextID++
	c.ID = repo.nextID
	c.CreatedAt = time.Now()
	stored := *c
	repo.comments[c.ID] = &stored
	return nil
}

func (repo *fakeRepository) Update(_ context.Context, c *comment.Comment) error {
	stored, ok := repo.comments[c.ID]
	if !ok {
		return apperr.NotFound("Comment")
	}
	stored.Text = c.Text
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, reviewID, commentID int64) error {
	c, ok := repo.comments[commentID]
	if !ok || c.ReviewID != reviewID {
		return apperr.NotFound("Comment")
	}
	delete(repo.comments, commentID)
	return nil
}

// # Helpers

const (
	knownTitle  = int64(1)
	knownReview = int64(7)
)

var (
	member    = sec.Actor{Authenticated: true, Role: sec.RoleUser}
	moderator = sec.Actor{Authenticated: true, Role: sec.RoleModerator}

	alice = uuid.MustParse("0191d2a0-0000-7000-8000-000000000001")
	bob   = uuid.MustParse("0191d2a0-0000-7000-8000-000000000002")
)

func newService(repo *fakeRepository) *comment.Service {
	reviews := &fakeReviewChecker{known: map[reviewKey]bool{
		{knownTitle, knownReview}: true,
	}}
	return comment.NewService(repo, reviews, slog.New(slog.DiscardHandler))
}

func createComment(t *testing.T, service *comment.Service) *comment.Comment {
	t.Helper()
	created, err := service.Create(context.Background(), knownTitle, knownReview, alice, "alice", "Completely agree.")
	require.NoError(t, err)
	return created
}

// # Tests

func TestCreate_MismatchedParentsAreNotFound(t *testing.T) {
	service := newService(newFakeRepository())

	// Both the review and the title exist, but not as a pair.
	_, err := service.Create(context.Background(), 2, knownReview, alice, "alice", "Orphaned")
	assert.True(t, apperr.IsNotFound(err))

	_, err = service.Create(context.Background(), knownTitle, 99, alice, "alice", "Orphaned")
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreate_EmptyTextIsRejected(t *testing.T) {
	service := newService(newFakeRepository())

	_, err := service.Create(context.Background(), knownTitle, knownReview, alice, "alice", "")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

func TestPatch_OwnerMayEdit(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	created := createComment(t, service)

	updated, err := service.Patch(context.Background(), knownTitle, knownReview, created.ID,
		member, alice, pointer.To("Agree, mostly."))
	require.NoError(t, err)

	assert.Equal(t, "Agree, mostly.", updated.Text)
}

func TestPatch_StrangerIsForbidden(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	created := createComment(t, service)

	_, err := service.Patch(context.Background(), knownTitle, knownReview, created.ID,
		member, bob, pointer.To("Hijacked"))
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)
}

func TestPatch_ModeratorMayEditAnyComment(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	created := createComment(t, service)

	_, err := service.Patch(context.Background(), knownTitle, knownReview, created.ID,
		moderator, bob, pointer.To("Redacted by moderation."))
	assert.NoError(t, err)
}

func TestDelete_AnonymousIsForbidden(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	created := createComment(t, service)

	err := service.Delete(context.Background(), knownTitle, knownReview, created.ID, sec.Actor{}, uuid.Nil)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)
}

func TestDelete_OwnerMayDelete(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	created := createComment(t, service)

	err := service.Delete(context.Background(), knownTitle, knownReview, created.ID, member, alice)
	require.NoError(t, err)

	_, err = service.Get(context.Background(), knownTitle, knownReview, created.ID)
	assert.True(t, apperr.IsNotFound(err))
}
