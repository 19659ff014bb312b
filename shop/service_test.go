package shop

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/BerryWebFounder/berryweb-shop/apperrors"
	"github.com/BerryWebFounder/berryweb-shop/db"
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

func newService(t *testing.T, users map[uint]identity.UserInfo) (*Service, *gorm.DB) {
	t.Helper()
	database, err := db.Connect(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return NewService(NewStore(database), &stubResolver{users: users}), database
}

var knownUsers = map[uint]identity.UserInfo{
	1:  {ID: 1, Username: "alice", Role: identity.RoleUser, IsActive: true},
	99: {ID: 99, Username: "root", Role: identity.RoleAdmin, IsActive: true},
}

func TestCreateShopRequiresRealIdentity(t *testing.T) {
	service, _ := newService(t, knownUsers)
	ctx := context.Background()

	info, err := service.CreateShop(ctx, CreateShopRequest{Name: "Berry Shop"}, "token", 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", info.OwnerUsername)
	assert.True(t, info.IsActive)
	assert.True(t, info.MinOrderAmount.IsZero())

	// User 7 is unknown upstream; the degraded fallback must not be enough
	// to own a shop.
	_, err = service.CreateShop(ctx, CreateShopRequest{Name: "Ghost Shop"}, "token", 7)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestCreateShopRejectsNegativeAmounts(t *testing.T) {
	service, _ := newService(t, knownUsers)

	fee := decimal.NewFromInt(-5)
	_, err := service.CreateShop(context.Background(), CreateShopRequest{
		Name: "Berry Shop", DeliveryFee: &fee,
	}, "token", 1)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrInvalidInput.Code, appErr.Code)
}

func TestUpdateShopPartialFields(t *testing.T) {
	service, _ := newService(t, knownUsers)
	ctx := context.Background()

	created, err := service.CreateShop(ctx, CreateShopRequest{
		Name:        "Berry Shop",
		Description: "jams and preserves",
		Phone:       "010-1234-5678",
	}, "token", 1)
	require.NoError(t, err)

	newName := "Berry Shop & Co"
	updated, err := service.UpdateShop(ctx, created.ID, UpdateShopRequest{Name: &newName}, "token", 1)
	require.NoError(t, err)

	assert.Equal(t, "Berry Shop & Co", updated.Name)
	assert.Equal(t, "jams and preserves", updated.Description)
	assert.Equal(t, "010-1234-5678", updated.Phone)
}

func TestUpdateShopOwnerOrAdminOnly(t *testing.T) {
	service, _ := newService(t, knownUsers)
	ctx := context.Background()

	created, err := service.CreateShop(ctx, CreateShopRequest{Name: "Berry Shop"}, "token", 1)
	require.NoError(t, err)

	name := "Taken Over"
	_, err = service.UpdateShop(ctx, created.ID, UpdateShopRequest{Name: &name}, "token", 2)
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)

	updated, err := service.UpdateShop(ctx, created.ID, UpdateShopRequest{Name: &name}, "token", 99)
	require.NoError(t, err)
	assert.Equal(t, "Taken Over", updated.Name)
}

func TestDeactivatedShopLeavesListings(t *testing.T) {
	service, _ := newService(t, knownUsers)
	ctx := context.Background()

	created, err := service.CreateShop(ctx, CreateShopRequest{Name: "Berry Shop"}, "token", 1)
	require.NoError(t, err)

	off := false
	_, err = service.UpdateShop(ctx, created.ID, UpdateShopRequest{IsActive: &off}, "token", 1)
	require.NoError(t, err)

	list, err := service.GetAllShops(ctx, 1, 20, "token")
	require.NoError(t, err)
	assert.Empty(t, list.Shops)
	assert.Zero(t, list.Total)

	_, err = service.GetShopByID(ctx, created.ID, "token")
	assert.ErrorIs(t, err, apperrors.ErrShopNotFound)
}

func TestSearchShopsByName(t *testing.T) {
	service, _ := newService(t, knownUsers)
	ctx := context.Background()

	_, err := service.CreateShop(ctx, CreateShopRequest{Name: "Berry Farm Stand"}, "token", 1)
	require.NoError(t, err)
	_, err = service.CreateShop(ctx, CreateShopRequest{Name: "Cheese Cellar"}, "token", 1)
	require.NoError(t, err)

	list, err := service.SearchShops(ctx, "Berry", 1, 20, "token")
	require.NoError(t, err)
	require.Len(t, list.Shops, 1)
	assert.Equal(t, "Berry Farm Stand", list.Shops[0].Name)
}

func TestShopInfoCarriesOwnerAndProductCount(t *testing.T) {
	service, database := newService(t, knownUsers)
	ctx := context.Background()

	created, err := service.CreateShop(ctx, CreateShopRequest{Name: "Berry Shop"}, "token", 1)
	require.NoError(t, err)

	for _, status := range []models.ProductStatus{models.ProductActive, models.ProductActive, models.ProductDiscontinued} {
		require.NoError(t, database.Create(&models.Product{
			ShopID:    created.ID,
			Name:      "Item",
			Price:     decimal.NewFromInt(10),
			Status:    status,
			CreatedBy: 1,
		}).Error)
	}

	info, err := service.GetShopByID(ctx, created.ID, "token")
	require.NoError(t, err)
	assert.Equal(t, "alice", info.OwnerUsername)
	assert.Equal(t, int64(2), info.ProductCount, "only active products count")
}

func TestShopOwnerFallsBackToUnknownWhenUpstreamIsDown(t *testing.T) {
	service, database := newService(t, nil)

	shop := &models.Shop{OwnerUserID: 55, Name: "Orphan Shop", IsActive: true, CreatedBy: 55}
	require.NoError(t, database.Create(shop).Error)

	info, err := service.GetShopByID(context.Background(), shop.ID, "token")
	require.NoError(t, err)
	assert.Equal(t, "unknown", info.OwnerUsername)
}

func TestGetMyShopsListsOnlyCallersActiveShops(t *testing.T) {
	service, database := newService(t, knownUsers)
	ctx := context.Background()

	mine, err := service.CreateShop(ctx, CreateShopRequest{Name: "Mine"}, "token", 1)
	require.NoError(t, err)
	require.NoError(t, database.Create(&models.Shop{OwnerUserID: 2, Name: "Theirs", IsActive: true, CreatedBy: 2}).Error)

	shops, err := service.GetMyShops(ctx, "token", 1)
	require.NoError(t, err)
	require.Len(t, shops, 1)
	assert.Equal(t, mine.ID, shops[0].ID)
	assert.Equal(t, "alice", shops[0].OwnerUsername)
}
