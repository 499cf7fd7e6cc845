package integration

import (
	"context"
	"net/url"
	"testing"

	"shopkart/internal/model"
	"shopkart/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tdb := SetupTestDB(t)
	defer tdb.Cleanup(t)

	ctx := context.Background()
	logger := zerolog.Nop()
	repo := repository.NewUserRepository(tdb.DB, logger)

	user := &model.User{
		FirstName: "jane",
		LastName:  "doe",
		Email:     "jane@example.com",
		Phone:     "9876543210",
		Password:  "$2a$10$hash",
		Role:      model.RoleUser,
	}

	require.NoError(t, repo.Insert(ctx, user))
	require.False(t, user.ID.IsZero())

	t.Run("lookup by email and phone", func(t *testing.T) {
		byEmail, err := repo.GetByEmail(ctx, "jane@example.com")
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, user.ID, byEmail.ID)

		byPhone, err := repo.GetByPhone(ctx, "9876543210")
		require.NoError(t, err)
		require.NotNil(t, byPhone)
		assert.Equal(t, user.ID, byPhone.ID)
	})

	t.Run("missing lookup returns nil without error", func(t *testing.T) {
		missing, err := repo.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("duplicate email rejected by unique index", func(t *testing.T) {
		dup := &model.User{
			Email: "jane@example.com",
			Phone: "1112223334",
			Role:  model.RoleUser,
		}
		assert.Error(t, repo.Insert(ctx, dup))
	})

	t.Run("role-filtered list", func(t *testing.T) {
		admin := &model.User{Email: "admin@example.com", Phone: "0001112223", Role: model.RoleAdmin}
		require.NoError(t, repo.Insert(ctx, admin))

		onlyUsers, err := repo.List(ctx, model.RoleUser)
		require.NoError(t, err)
		require.Len(t, onlyUsers, 1)
		assert.Equal(t, user.ID, onlyUsers[0].ID)

		everyone, err := repo.List(ctx, "")
		require.NoError(t, err)
		assert.Len(t, everyone, 2)
	})
}

func TestProductRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tdb := SetupTestDB(t)
	defer tdb.Cleanup(t)

	ctx := context.Background()
	logger := zerolog.Nop()
	repo := repository.NewProductRepository(tdb.DB, logger)

	categoryID := primitive.NewObjectID()
	seed := []*model.Product{
		{Name: "wireless mouse", Price: 80, Stock: 10, CategoryID: categoryID, Brand: "clickco"},
		{Name: "wired mouse", Price: 60, Stock: 3, CategoryID: categoryID, Brand: "clickco"},
		{Name: "keyboard", Price: 250, Stock: 7, CategoryID: categoryID, Brand: "keyco"},
	}
	for _, p := range seed {
		require.NoError(t, repo.Insert(ctx, p))
	}

	t.Run("search filter", func(t *testing.T) {
		filter := repository.BuildFilter(url.Values{"search": {"Mouse"}}, repository.DefaultPageSize)
		found, err := repo.Find(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("price range filter", func(t *testing.T) {
		filter := repository.BuildFilter(url.Values{"price[gte]": {"70"}, "price[lte]": {"100"}}, repository.DefaultPageSize)
		found, err := repo.Find(ctx, filter)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "wireless mouse", found[0].Name)
	})

	t.Run("pagination", func(t *testing.T) {
		page1, err := repo.Find(ctx, repository.BuildFilter(url.Values{"page": {"1"}}, 2))
		require.NoError(t, err)
		assert.Len(t, page1, 2)

		page2, err := repo.Find(ctx, repository.BuildFilter(url.Values{"page": {"2"}}, 2))
		require.NoError(t, err)
		assert.Len(t, page2, 1)
	})

	t.Run("inventory adjustment", func(t *testing.T) {
		target := seed[0]
		require.NoError(t, repo.AdjustInventory(ctx, target.ID, -2, 2))

		got, err := repo.GetByID(ctx, target.ID)
		require.NoError(t, err)
		assert.Equal(t, 8, got.Stock)
		assert.Equal(t, 2, got.SoldUnits)

		require.NoError(t, repo.AdjustInventory(ctx, target.ID, 2, -2))
		got, err = repo.GetByID(ctx, target.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, got.Stock)
		assert.Equal(t, 0, got.SoldUnits)
	})
}

func TestCouponRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tdb := SetupTestDB(t)
	defer tdb.Cleanup(t)

	ctx := context.Background()
	logger := zerolog.Nop()
	repo := repository.NewCouponRepository(tdb.DB, logger)

	coupon := &model.Coupon{Code: "SAVE10", Discount: 10, IsActive: true}
	require.NoError(t, repo.Insert(ctx, coupon))

	t.Run("active lookup", func(t *testing.T) {
		found, err := repo.GetActiveByCode(ctx, "SAVE10")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, coupon.ID, found.ID)
	})

	t.Run("deactivate makes lookup miss", func(t *testing.T) {
		updated, err := repo.Deactivate(ctx, coupon.ID)
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.False(t, updated.IsActive)

		found, err := repo.GetActiveByCode(ctx, "SAVE10")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("duplicate code rejected", func(t *testing.T) {
		assert.Error(t, repo.Insert(ctx, &model.Coupon{Code: "SAVE10", Discount: 20, IsActive: true}))
	})
}

func TestOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tdb := SetupTestDB(t)
	defer tdb.Cleanup(t)

	ctx := context.Background()
	logger := zerolog.Nop()
	repo := repository.NewOrderRepository(tdb.DB, logger)

	userID := primitive.NewObjectID()
	order := &model.Order{
		Items:  []model.OrderItem{{ProductID: primitive.NewObjectID(), Quantity: 2}},
		UserID: userID,
		Status: model.StatusOrdered,
		Amounts: model.OrderAmounts{
			OrderAmount: 200,
			TotalAmount: 230,
			Tax:         30,
		},
		Payment: model.PaymentInfo{
			TransactionID: "pi_test",
			AmountPaid:    230,
			Method:        model.MethodCard,
		},
	}
	require.NoError(t, repo.Insert(ctx, order))
	require.False(t, order.ID.IsZero())

	t.Run("round trip", func(t *testing.T) {
		got, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, model.StatusOrdered, got.Status)
		assert.Equal(t, "pi_test", got.Payment.TransactionID)
		require.Len(t, got.Items, 1)
		assert.Equal(t, 2, got.Items[0].Quantity)
	})

	t.Run("list by user", func(t *testing.T) {
		other := &model.Order{UserID: primitive.NewObjectID(), Status: model.StatusOrdered}
		require.NoError(t, repo.Insert(ctx, other))

		mine, err := repo.ListByUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, order.ID, mine[0].ID)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("status update persists", func(t *testing.T) {
		got, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)

		got.Status = model.StatusShipped
		require.NoError(t, repo.Update(ctx, got))

		reloaded, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusShipped, reloaded.Status)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, order.ID))
		gone, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})
}
