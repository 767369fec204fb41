package review_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/critiq-app/critiq/internal/core/review"
	"github.com/critiq-app/critiq/internal/platform/apperr"
	"github.com/critiq-app/critiq/internal/platform/sec"
	"github.com/critiq-app/critiq/pkg/pointer"
)

// # Fakes

type fakeTitleChecker struct {
	known map[int64]bool
}

func (checker *fakeTitleChecker) Exists(_ context.Context, id int64) (bool, error) {
	return checker.known[id], nil
}

type fakeRepository struct {
	reviews map[int64]*review.Review
	nextID  int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{reviews: make(map[int64]*review.Review)}
}

func (repo *fakeRepository) ListByTitle(_ context.Context, titleID int64, _, _ int) ([]review.Review, int, error) {
	out := make([]review.Review, 0)
	for _, r := range repo.reviews {
		if r.TitleID == titleID {
			out = append(out, *r)
		}
	}
	return out, len(out), nil
}

func (repo *fakeRepository) GetByID(_ context.Context, titleID, reviewID int64) (*review.Review, error) {
	r, ok := repo.reviews[reviewID]
	if !ok || r.TitleID != titleID {
		return nil, apperr.NotFound("Review")
	}
	copied := *r
	return &copied, nil
}

func (repo *fakeRepository) Exists(_ context.Context, titleID, reviewID int64) (bool, error) {
	r, ok := repo.reviews[reviewID]
	return ok && r.TitleID == titleID, nil
}

func (repo *fakeRepository) ExistsByAuthor(_ context.Context, titleID int64, authorID uuid.UUID) (bool, error) {
	for _, r := range repo.reviews {
		if r.TitleID == titleID && r.AuthorID == authorID {
			return true, nil
		}
	}
	return false, nil
}

func (repo *fakeRepository) Create(_ context.Context, r *review.Review) error {
	repo.nextID++
	r.ID = repo.nextID
	r.CreatedAt = time.Now()
	stored := *r
	repo.reviews[r.ID] = &stored
	return nil
}

func (repo *fakeRepository) Update(_ context.Context, r *review.Review) error {
	stored, ok := repo.reviews[r.ID]
	if !ok {
		return apperr.NotFound("Review")
	}
	stored.Text = r.Text
	stored.Score = r.Score
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, titleID, reviewID int64) error {
	r, ok := repo.reviews[reviewID]
	if !ok || r.TitleID != titleID {
		return apperr.NotFound("Review")
	}
	delete(repo.reviews, reviewID)
	return nil
}

// # Helpers

const knownTitle = int64(1)

var (
	anonymous = sec.Actor{}
	member    = sec.Actor{Authenticated: true, Role: sec.RoleUser}
	moderator = sec.Actor{Authenticated: true, Role: sec.RoleModerator}

	alice = uuid.MustParse("0191d2a0-0000-7000-8000-000000000001")
	bob   = uuid.MustParse("0191d2a0-0000-7000-8000-000000000002")
)

func newService(repo *fakeRepository) *review.Service {
	titles := &fakeTitleChecker{known: map[int64]bool{knownTitle: true}}
	return review.NewService(repo, titles, slog.New(slog.DiscardHandler))
}

func createReview(t *testing.T, service *review.Service) *review.Review {
	t.Helper()
	created, err := service.Create(context.Background(), knownTitle, alice, "alice", review.CreateInput{
		Text:  "A slow burn that pays off.",
		Score: 8,
	})
	require.NoError(t, err)
	return created
}

// # Tests

func TestCreate_MissingTitleIsNotFound(t *testing.T) {
	service := newService(newFakeRepository())

	_, err := service.Create(context.Background(), 404, alice, "alice", review.CreateInput{
		Text:  "Nope",
		Score: 5,
	})
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreate_ScoreMustBeInRange(t *testing.T) {
	service := newService(newFakeRepository())

	for _, score := range []int{0, 11, -3} {
		_, err := service.Create(context.Background(), knownTitle, alice, "alice", review.CreateInput{
			Text:  "Out of bounds",
			Score: score,
		})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	}
}

func TestCreate_SecondReviewBySameAuthorConflicts(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	createReview(t, service)

	_, err := service.Create(context.Background(), knownTitle, alice, "alice", review.CreateInput{
		Text:  "Changed my mind.",
		Score: 3,
	})
	assert.True(t, apperr.IsConflict(err))

	// A different author on the same title is fine.
	_, err = service.Create(context.Background(), knownTitle, bob, "bob", review.CreateInput{
		Text:  "Overrated.",
		Score: 4,
	})
	assert.NoError(t, err)

	// So is the same author on a different title.
	titles := &fakeTitleChecker{known: map[int64]bool{knownTitle: true, 2: true}}
	wider := review.NewService(repo, titles, slog.New(slog.DiscardHandler))
	_, err = wider.Create(context.Background(), 2, alice, "alice", review.CreateInput{
		Text:  "Different story entirely.",
		Score: 7,
	})
	assert.NoError(t, err)
}

func TestPatch_OwnerMayEdit(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	created := createReview(t, service)

	updated, err := service.Patch(context.Background(), knownTitle, created.ID, member, alice, review.PatchInput{
		Score: pointer.To(9),
	})
	require.NoError(t, err)

	assert.Equal(t, 9, updated.Score)
	assert.Equal(t, created.Text, updated.Text)
}

func TestPatch_DoesNotTripOneReviewRule(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	created := createReview(t, service)

	// Editing an existing review must never collide with itself.
	_, err := service.Patch(context.Background(), knownTitle, created.ID, member, alice, review.PatchInput{
		Text: pointer.To("Even better on rewatch."),
	})
	assert.NoError(t, err)
}

func TestPatch_StrangerIsForbidden(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	created := createReview(t, service)

	_, err := service.Patch(context.Background(), knownTitle, created.ID, member, bob, review.PatchInput{
		Text: pointer.To("Hijacked"),
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)
}

func TestPatch_ModeratorMayEditAnyReview(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	created := createReview(t, service)

	_, err := service.Patch(context.Background(), knownTitle, created.ID, moderator, bob, review.PatchInput{
		Text: pointer.To("Toned down by moderation."),
	})
	assert.NoError(t, err)
}

func TestPatch_WrongTitleScopeIsNotFound(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	created := createReview(t, service)

	// The review exists, but not under this title.
	titles := &fakeTitleChecker{known: map[int64]bool{knownTitle: true, 2: true}}
	scoped := review.NewService(repo, titles, slog.New(slog.DiscardHandler))

	_, err := scoped.Patch(context.Background(), 2, created.ID, member, alice, review.PatchInput{
		Text: pointer.To("Misfiled"),
	})
	assert.True(t, apperr.IsNotFound(err))
}

func TestDelete_AnonymousIsForbidden(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	created := createReview(t, service)

	err := service.Delete(context.Background(), knownTitle, created.ID, anonymous, uuid.Nil)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)
}

func TestDelete_OwnerMayDelete(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	created := createReview(t, service)

	err := service.Delete(context.Background(), knownTitle, created.ID, member, alice)
	require.NoError(t, err)

	_, err = service.Get(context.Background(), knownTitle, created.ID)
	assert.True(t, apperr.IsNotFound(err))
}
