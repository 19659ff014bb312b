package review

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/BerryWebFounder/berryweb-shop/apperrors"
	"github.com/BerryWebFounder/berryweb-shop/db"
	"github.com/BerryWebFounder/berryweb-shop/files"
	"github.com/BerryWebFounder/berryweb-shop/identity"
	"github.com/BerryWebFounder/berryweb-shop/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubResolver struct {
	users map[uint]identity.UserInfo
}

func (s *stubResolver) Resolve(ctx context.Context, userID uint, token string) identity.UserInfo {
	if u, ok := s.users[userID]; ok {
		return u
	}
	return identity.FallbackUser(userID)
}

func (s *stubResolver) ResolveMany(ctx context.Context, userIDs []uint, token string) []identity.UserInfo {
	infos := make([]identity.UserInfo, 0, len(userIDs))
	for _, id := range userIDs {
		if u, ok := s.users[id]; ok {
			infos = append(infos, u)
		}
	}
	return infos
}

func (s *stubResolver) Lookup(ctx context.Context, userID uint, token string) (*identity.UserInfo, error) {
	if u, ok := s.users[userID]; ok {
		return &u, nil
	}
	return nil, errors.New("user not found")
}

type fixture struct {
	db      *gorm.DB
	service *Service
	store   *Store
	product *models.Product
}

func newFixture(t *testing.T, users map[uint]identity.UserInfo) *fixture {
	t.Helper()

	database, err := db.Connect(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	// Serialize writers; sqlite allows only one anyway.
	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	shop := &models.Shop{OwnerUserID: 1, Name: "Berry Shop", IsActive: true, CreatedBy: 1}
	require.NoError(t, database.Create(shop).Error)
	product := &models.Product{
		ShopID:    shop.ID,
		Name:      "Blueberry Jam",
		Price:     decimal.NewFromInt(12),
		Status:    models.ProductActive,
		CreatedBy: 1,
	}
	require.NoError(t, database.Create(product).Error)

	store := NewStore(database)
	fileSvc := files.NewService(t.TempDir(), 1024*1024, []string{"jpg", "png"})
	service := NewService(store, &stubResolver{users: users}, fileSvc, nil, 5)

	return &fixture{db: database, service: service, store: store, product: product}
}

func (f *fixture) createReview(t *testing.T, userID uint, rating int) *ReviewInfo {
	t.Helper()
	info, err := f.service.CreateReview(context.Background(), CreateReviewRequest{
		ProductID: f.product.ID,
		Rating:    rating,
		Content:   "tasty",
	}, nil, "token", userID)
	require.NoError(t, err)
	return info
}

func (f *fixture) reloadProduct(t *testing.T) *models.Product {
	t.Helper()
	var product models.Product
	require.NoError(t, f.db.First(&product, f.product.ID).Error)
	return &product
}

func TestCreateReviewRecomputesProductRating(t *testing.T) {
	f := newFixture(t, nil)

	f.createReview(t, 10, 5)
	f.createReview(t, 11, 3)

	product := f.reloadProduct(t)
	assert.Equal(t, 2, product.RatingCount)
	assert.InDelta(t, 4.0, product.RatingAverage, 0.001)
}

func TestDuplicateActiveReviewRejected(t *testing.T) {
	f := newFixture(t, nil)

	first := f.createReview(t, 10, 4)

	_, err := f.service.CreateReview(context.Background(), CreateReviewRequest{
		ProductID: f.product.ID,
		Rating:    2,
		Content:   "changed my mind",
	}, nil, "token", 10)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateReview)

	// After soft-deleting the first review a new one is allowed.
	require.NoError(t, f.service.DeleteReview(context.Background(), first.ID, "token", 10))
	second := f.createReview(t, 10, 2)
	assert.NotEqual(t, first.ID, second.ID)

	product := f.reloadProduct(t)
	assert.Equal(t, 1, product.RatingCount)
	assert.InDelta(t, 2.0, product.RatingAverage, 0.001)
}

func TestUpdateReviewIsAuthorOnlyAndRecomputes(t *testing.T) {
	f := newFixture(t, nil)
	info := f.createReview(t, 10, 5)

	_, err := f.service.UpdateReview(context.Background(), info.ID, UpdateReviewRequest{
		Rating:  1,
		Content: "actually bad",
	}, "token", 11)
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)

	updated, err := f.service.UpdateReview(context.Background(), info.ID, UpdateReviewRequest{
		Rating:  1,
		Content: "actually bad",
	}, "token", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Rating)

	product := f.reloadProduct(t)
	assert.InDelta(t, 1.0, product.RatingAverage, 0.001)
}

func TestDeleteReviewAllowsAuthorOrAdmin(t *testing.T) {
	f := newFixture(t, map[uint]identity.UserInfo{
		99: {ID: 99, Username: "root", Role: identity.RoleAdmin, IsActive: true},
	})

	info := f.createReview(t, 10, 5)
	err := f.service.DeleteReview(context.Background(), info.ID, "token", 11)
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)

	require.NoError(t, f.service.DeleteReview(context.Background(), info.ID, "token", 99))

	product := f.reloadProduct(t)
	assert.Equal(t, 0, product.RatingCount)
	assert.InDelta(t, 0.0, product.RatingAverage, 0.001)
}

func TestSoftDeletedReviewsExcludedFromListing(t *testing.T) {
	f := newFixture(t, map[uint]identity.UserInfo{
		10: {ID: 10, Username: "alice", Role: identity.RoleUser, IsActive: true},
	})

	kept := f.createReview(t, 10, 5)
	dropped := f.createReview(t, 11, 1)
	require.NoError(t, f.service.DeleteReview(context.Background(), dropped.ID, "token", 11))

	list, err := f.service.GetReviewsByProduct(context.Background(), f.product.ID, 1, 20, "token", 0)
	require.NoError(t, err)
	require.Len(t, list.Reviews, 1)
	assert.Equal(t, kept.ID, list.Reviews[0].ID)
	assert.Equal(t, "alice", list.Reviews[0].Username)
	assert.Equal(t, int64(1), list.Total)
}

func TestToggleHelpfulPairIsIdempotent(t *testing.T) {
	f := newFixture(t, nil)
	info := f.createReview(t, 10, 5)

	on, err := f.service.ToggleHelpful(info.ID, 20)
	require.NoError(t, err)
	assert.True(t, on.Voted)
	assert.Equal(t, 1, on.HelpfulCount)

	off, err := f.service.ToggleHelpful(info.ID, 20)
	require.NoError(t, err)
	assert.False(t, off.Voted)
	assert.Equal(t, 0, off.HelpfulCount)

	votes, err := f.store.CountVotes(info.ID)
	require.NoError(t, err)
	assert.Zero(t, votes)
}

func TestToggleHelpfulUnknownReview(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.service.ToggleHelpful(12345, 20)
	assert.ErrorIs(t, err, apperrors.ErrReviewNotFound)
}

func TestToggleHelpfulConcurrentDistinctUsers(t *testing.T) {
	f := newFixture(t, nil)
	info := f.createReview(t, 10, 5)

	const voters = 20
	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			_, err := f.service.ToggleHelpful(info.ID, userID)
			assert.NoError(t, err)
		}(uint(100 + i))
	}
	wg.Wait()

	review, err := f.store.FindActiveByID(info.ID)
	require.NoError(t, err)
	votes, err := f.store.CountVotes(info.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(voters), votes)
	assert.Equal(t, int64(review.HelpfulCount), votes, "counter must equal vote rows")
}

func TestToggleHelpfulConcurrentMixedUsersKeepsInvariant(t *testing.T) {
	f := newFixture(t, nil)
	info := f.createReview(t, 10, 5)

	// Five users, each toggling four times concurrently; every pair cancels
	// out so the final count is zero, and the counter must match the rows
	// no matter how the toggles interleave.
	var wg sync.WaitGroup
	for user := 0; user < 5; user++ {
		for rep := 0; rep < 4; rep++ {
			wg.Add(1)
			go func(userID uint) {
				defer wg.Done()
				_, err := f.service.ToggleHelpful(info.ID, userID)
				assert.NoError(t, err)
			}(uint(200 + user))
		}
	}
	wg.Wait()

	review, err := f.store.FindActiveByID(info.ID)
	require.NoError(t, err)
	votes, err := f.store.CountVotes(info.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(review.HelpfulCount), votes, "counter must equal vote rows")
	assert.Zero(t, votes)
}

func TestCreateReviewOnInactiveProduct(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.db.Model(&models.Product{}).Where("id = ?", f.product.ID).
		Update("status", models.ProductDiscontinued).Error)

	_, err := f.service.CreateReview(context.Background(), CreateReviewRequest{
		ProductID: f.product.ID,
		Rating:    5,
		Content:   "late to the party",
	}, nil, "token", 10)
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
}

func TestCreateReviewRejectsInvalidRating(t *testing.T) {
	f := newFixture(t, nil)

	for _, rating := range []int{0, 6} {
		_, err := f.service.CreateReview(context.Background(), CreateReviewRequest{
			ProductID: f.product.ID,
			Rating:    rating,
			Content:   "out of range",
		}, nil, "token", 10)
		var appErr *apperrors.Error
		require.ErrorAs(t, err, &appErr, "rating %d", rating)
		assert.Equal(t, apperrors.ErrInvalidInput.Code, appErr.Code)
	}
}

func TestCreateReviewWithImages(t *testing.T) {
	f := newFixture(t, nil)

	uploads := []files.Upload{
		{Filename: "a.jpg", Size: 3, Content: []byte("aaa")},
		{Filename: "b.png", Size: 3, Content: []byte("bbb")},
	}
	info, err := f.service.CreateReview(context.Background(), CreateReviewRequest{
		ProductID: f.product.ID,
		Rating:    4,
		Content:   "with photos",
	}, uploads, "token", 10)
	require.NoError(t, err)

	require.Len(t, info.Images, 2)
	assert.Equal(t, "a.jpg", info.Images[0].OriginalFilename)
	assert.NotEqual(t, "a.jpg", info.Images[0].StoredFilename)
	assert.Equal(t, 0, info.Images[0].SortOrder)
	assert.Equal(t, 1, info.Images[1].SortOrder)
}

func TestCreateReviewImageConstraints(t *testing.T) {
	f := newFixture(t, nil)

	tooMany := make([]files.Upload, 6)
	for i := range tooMany {
		tooMany[i] = files.Upload{Filename: "x.jpg", Size: 1, Content: []byte("x")}
	}
	_, err := f.service.CreateReview(context.Background(), CreateReviewRequest{
		ProductID: f.product.ID, Rating: 4, Content: "spam",
	}, tooMany, "token", 10)
	assert.ErrorIs(t, err, apperrors.ErrFileCountExceeded)

	_, err = f.service.CreateReview(context.Background(), CreateReviewRequest{
		ProductID: f.product.ID, Rating: 4, Content: "exe",
	}, []files.Upload{{Filename: "virus.exe", Size: 1, Content: []byte("x")}}, "token", 10)
	assert.ErrorIs(t, err, apperrors.ErrFileExtensionNotAllowed)
}
