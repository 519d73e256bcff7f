package tests

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"resort-concierge/guest-svc/internal/cart"
	"resort-concierge/guest-svc/internal/domain"
	"resort-concierge/guest-svc/internal/mocks"
	"resort-concierge/guest-svc/internal/service"
	"resort-concierge/guest-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCartStore(t *testing.T) (*storage.RedisCartStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return storage.NewRedisCartStore(client, time.Hour), mr
}

func seedCart(t *testing.T, store cart.Store, owner string, items ...cart.Item) {
	t.Helper()
	c := cart.New()
	for _, item := range items {
		c.AddItem(item)
	}
	require.NoError(t, store.Save(context.Background(), owner, c))
}

func TestCartService_AddItemSnapshotsMenu(t *testing.T) {
	ctx := context.Background()
	store, _ := newCartStore(t)
	catalog := mocks.NewCatalogServiceInterface(t)
	logger, _ := test.NewNullLogger()
	svc := cart.NewService(store, catalog, mocks.NewOrderServiceInterface(t), 0, logger.WithField("service", "test"))

	catalog.On("GetMenuItem", ctx, spritz.ID).Return(&spritz, nil).Twice()

	_, err := svc.AddItem(ctx, "user-1", spritz.ID, 0, "")
	require.NoError(t, err)
	c, err := svc.AddItem(ctx, "user-1", spritz.ID, 2, "lots of ice")
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, poolBar.ID, c.Items[0].VenueID)
	assert.Equal(t, "Coral Spritz", c.Items[0].Name)
	assert.True(t, spritz.Price.Equal(c.Items[0].PriceEstimate))

	reloaded, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.TotalItems())
}

func TestCartService_AddItemRejections(t *testing.T) {
	ctx := context.Background()
	soldOut := domain.MenuItem{ID: uuid.New(), VenueID: poolBar.ID, Price: decimal.NewFromInt(3), IsAvailable: false}
	unknown := uuid.New()

	tests := []struct {
		name         string
		menuItemID   uuid.UUID
		prepareMocks func(m *mocks.CatalogServiceInterface)
		wantErr      error
		wantInvalid  bool
	}{
		{
			name:         "nil id",
			menuItemID:   uuid.Nil,
			prepareMocks: func(m *mocks.CatalogServiceInterface) {},
			wantInvalid:  true,
		},
		{
			name:       "unknown item",
			menuItemID: unknown,
			prepareMocks: func(m *mocks.CatalogServiceInterface) {
				m.On("GetMenuItem", ctx, unknown).Return(nil, domain.ErrMenuItemNotFound).Once()
			},
			wantErr: domain.ErrMenuItemNotFound,
		},
		{
			name:       "sold out",
			menuItemID: soldOut.ID,
			prepareMocks: func(m *mocks.CatalogServiceInterface) {
				m.On("GetMenuItem", ctx, soldOut.ID).Return(&soldOut, nil).Once()
			},
			wantErr: domain.ErrUnavailableItems,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store, mr := newCartStore(t)
			catalog := mocks.NewCatalogServiceInterface(t)
			logger, _ := test.NewNullLogger()
			svc := cart.NewService(store, catalog, mocks.NewOrderServiceInterface(t), 0, logger.WithField("service", "test"))
			testCase.prepareMocks(catalog)

			_, err := svc.AddItem(ctx, "user-1", testCase.menuItemID, 1, "")

			if testCase.wantInvalid {
				assert.True(t, domain.IsValidation(err))
			} else {
				assert.ErrorIs(t, err, testCase.wantErr)
			}
			assert.False(t, mr.Exists(store.CartKey("user-1")))
		})
	}
}

func TestCartService_UpdateAndRemove(t *testing.T) {
	ctx := context.Background()
	store, mr := newCartStore(t)
	logger, _ := test.NewNullLogger()
	svc := cart.NewService(store, mocks.NewCatalogServiceInterface(t), mocks.NewOrderServiceInterface(t), 0, logger.WithField("service", "test"))

	a := cart.Item{MenuItemID: uuid.New(), VenueID: poolBar.ID, PriceEstimate: decimal.NewFromInt(5), Quantity: 1}
	b := cart.Item{MenuItemID: uuid.New(), VenueID: poolBar.ID, PriceEstimate: decimal.NewFromInt(2), Quantity: 1}
	seedCart(t, store, "user-1", a, b)

	c, err := svc.UpdateQuantity(ctx, "user-1", a.MenuItemID, 3)
	require.NoError(t, err)
	assert.Equal(t, "17.00", c.TotalPrice().StringFixed(2))

	c, err = svc.UpdateQuantity(ctx, "user-1", a.MenuItemID, 0)
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)

	c, err = svc.RemoveItem(ctx, "user-1", b.MenuItemID)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
	assert.False(t, mr.Exists(store.CartKey("user-1")))

	seedCart(t, store, "user-1", a)
	require.NoError(t, svc.Clear(ctx, "user-1"))
	assert.False(t, mr.Exists(store.CartKey("user-1")))
}

func TestCartService_CheckoutTwoVenues(t *testing.T) {
	ctx := context.Background()
	store, mr := newCartStore(t)
	logger, _ := test.NewNullLogger()
	entry := logger.WithField("service", "test")

	venue1 := &domain.Venue{ID: uuid.New(), Name: "Azure Terrace", IsActive: true}
	venue2 := &domain.Venue{ID: uuid.New(), Name: "In-Room Dining", IsActive: true}
	itemA := domain.MenuItem{ID: uuid.New(), VenueID: venue1.ID, Name: "Burrata", Price: decimal.RequireFromString("5.00"), IsAvailable: true}
	itemB := domain.MenuItem{ID: uuid.New(), VenueID: venue2.ID, Name: "Club Sandwich", Price: decimal.RequireFromString("10.00"), IsAvailable: true}

	orderRepo := mocks.NewOrderRepository(t)
	catalogRepo := mocks.NewCatalogRepository(t)
	notificationRepo := mocks.NewNotificationRepository(t)
	publisher := mocks.NewOrderEventPublisher(t)
	orders := service.NewOrderService(orderRepo, catalogRepo, notificationRepo, publisher, mocks.NewQRGenerator(t), entry)

	catalogRepo.On("GetVenue", ctx, venue1.ID).Return(venue1, nil).Once()
	catalogRepo.On("GetVenue", ctx, venue2.ID).Return(venue2, nil).Once()
	catalogRepo.On("FindAvailableItems", ctx, venue1.ID, []uuid.UUID{itemA.ID}).Return([]domain.MenuItem{itemA}, nil).Once()
	catalogRepo.On("FindAvailableItems", ctx, venue2.ID, []uuid.UUID{itemB.ID}).Return([]domain.MenuItem{itemB}, nil).Once()
	orderRepo.On("CreateOrder", ctx, mock.Anything).Return(nil).Twice()
	notificationRepo.On("CreateNotification", ctx, mock.Anything).Return(nil).Twice()
	publisher.On("PublishOrderPlaced", ctx, mock.Anything).Return(nil).Twice()

	// The cart's price estimates are stale on purpose; orders use catalog prices.
	seedCart(t, store, "user-1",
		cart.Item{MenuItemID: itemA.ID, VenueID: venue1.ID, PriceEstimate: decimal.RequireFromString("0.01"), Quantity: 2},
		cart.Item{MenuItemID: itemB.ID, VenueID: venue2.ID, PriceEstimate: decimal.RequireFromString("0.01"), Quantity: 1},
	)

	svc := cart.NewService(store, mocks.NewCatalogServiceInterface(t), orders, 2, entry)
	result, err := svc.Checkout(ctx, "user-1", uuid.New(), cart.CheckoutRequest{DeliveryAddress: "Room 412"})

	require.NoError(t, err)
	assert.Empty(t, result.Failed)
	require.Len(t, result.Orders, 2)
	assert.False(t, result.Partial())

	totals := []string{result.Orders[0].TotalAmount.StringFixed(2), result.Orders[1].TotalAmount.StringFixed(2)}
	sort.Strings(totals)
	assert.Equal(t, []string{"10.00", "10.00"}, totals)
	for _, order := range result.Orders {
		assert.Equal(t, "Room 412", order.DeliveryAddress)
	}

	assert.Empty(t, result.Cart.Items)
	assert.False(t, mr.Exists(store.CartKey("user-1")))
}

func TestCartService_CheckoutPartialFailureKeepsFailedGroup(t *testing.T) {
	ctx := context.Background()
	store, _ := newCartStore(t)
	logger, _ := test.NewNullLogger()
	placer := mocks.NewOrderServiceInterface(t)
	profileID := uuid.New()

	good, bad := uuid.New(), uuid.New()
	goodItem := cart.Item{MenuItemID: uuid.New(), VenueID: good, Name: "Coffee", PriceEstimate: decimal.NewFromInt(3), Quantity: 1}
	badItem1 := cart.Item{MenuItemID: uuid.New(), VenueID: bad, Name: "Lobster", PriceEstimate: decimal.NewFromInt(40), Quantity: 1}
	badItem2 := cart.Item{MenuItemID: uuid.New(), VenueID: bad, Name: "Caviar", PriceEstimate: decimal.NewFromInt(90), Quantity: 1}
	seedCart(t, store, "user-1", badItem1, goodItem, badItem2)

	placer.On("Create", ctx, profileID, mock.MatchedBy(func(req domain.CreateOrderRequest) bool { return req.VenueID == good })).
		Return(&domain.Order{OrderNumber: "ORD-OK", VenueID: good}, nil).Once()
	placer.On("Create", ctx, profileID, mock.MatchedBy(func(req domain.CreateOrderRequest) bool {
		return req.VenueID == bad && len(req.Items) == 2 && req.Items[0].MenuItemID == badItem1.MenuItemID
	})).Return(nil, domain.ErrUnavailableItems).Once()

	svc := cart.NewService(store, mocks.NewCatalogServiceInterface(t), placer, 0, logger.WithField("service", "test"))
	result, err := svc.Checkout(ctx, "user-1", profileID, cart.CheckoutRequest{})

	require.NoError(t, err)
	assert.True(t, result.Partial())
	require.Len(t, result.Orders, 1)
	assert.Equal(t, "ORD-OK", result.Orders[0].OrderNumber)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, bad, result.Failed[0].VenueID)
	assert.Equal(t, domain.ErrUnavailableItems.Error(), result.Failed[0].Reason)
	assert.Len(t, result.Failed[0].Items, 2)

	remaining, err := store.Load(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, remaining.Items, 2)
	assert.Equal(t, badItem1.MenuItemID, remaining.Items[0].MenuItemID)
	assert.Equal(t, badItem2.MenuItemID, remaining.Items[1].MenuItemID)
}

func TestCartService_CheckoutAllFailedLeavesCart(t *testing.T) {
	ctx := context.Background()
	store, _ := newCartStore(t)
	logger, _ := test.NewNullLogger()
	placer := mocks.NewOrderServiceInterface(t)

	item := cart.Item{MenuItemID: uuid.New(), VenueID: uuid.New(), PriceEstimate: decimal.NewFromInt(1), Quantity: 1}
	seedCart(t, store, "user-1", item)
	placer.On("Create", ctx, mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()

	svc := cart.NewService(store, mocks.NewCatalogServiceInterface(t), placer, 0, logger.WithField("service", "test"))
	result, err := svc.Checkout(ctx, "user-1", uuid.New(), cart.CheckoutRequest{})

	require.NoError(t, err)
	assert.Empty(t, result.Orders)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "order could not be placed", result.Failed[0].Reason)

	remaining, err := store.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, remaining.Items, 1)
}

func TestCartService_CheckoutEmptyCart(t *testing.T) {
	store, _ := newCartStore(t)
	logger, _ := test.NewNullLogger()
	svc := cart.NewService(store, mocks.NewCatalogServiceInterface(t), mocks.NewOrderServiceInterface(t), 0, logger.WithField("service", "test"))

	_, err := svc.Checkout(context.Background(), "user-1", uuid.New(), cart.CheckoutRequest{})

	assert.True(t, domain.IsValidation(err))
}

func TestRedisCartStore_TTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newCartStore(t)
	seedCart(t, store, "user-ttl", cart.Item{MenuItemID: uuid.New(), VenueID: uuid.New(), Quantity: 1})

	assert.Equal(t, time.Hour, mr.TTL(store.CartKey("user-ttl")))

	mr.FastForward(30 * time.Minute)
	_, err := store.Load(ctx, "user-ttl")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, mr.TTL(store.CartKey("user-ttl")))

	mr.FastForward(2 * time.Hour)
	c, err := store.Load(ctx, "user-ttl")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestRedisCartStore_CorruptPayload(t *testing.T) {
	store, mr := newCartStore(t)
	require.NoError(t, mr.Set(store.CartKey("user-x"), "{not json"))

	_, err := store.Load(context.Background(), "user-x")

	assert.Error(t, err)
}

func TestCartService_ConcurrentCheckoutPlacesOnce(t *testing.T) {
	ctx := context.Background()
	store, mr := newCartStore(t)
	logger, _ := test.NewNullLogger()
	placer := mocks.NewOrderServiceInterface(t)
	profileID := uuid.New()

	seedCart(t, store, "user-1", cart.Item{MenuItemID: uuid.New(), VenueID: poolBar.ID, PriceEstimate: decimal.NewFromInt(5), Quantity: 1})
	placer.On("Create", mock.Anything, profileID, mock.Anything).
		After(50*time.Millisecond).
		Return(&domain.Order{OrderNumber: "ORD-ONCE"}, nil).Once()

	svc := cart.NewService(store, mocks.NewCatalogServiceInterface(t), placer, 0, logger.WithField("service", "test"))

	var wg sync.WaitGroup
	results := make([]*cart.CheckoutResult, 2)
	errs := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = svc.Checkout(ctx, "user-1", profileID, cart.CheckoutRequest{})
		}()
	}
	wg.Wait()

	placed := 0
	for i := range results {
		if errs[i] != nil {
			assert.True(t, errors.Is(errs[i], domain.ErrCheckoutInProgress) || domain.IsValidation(errs[i]), "unexpected error: %v", errs[i])
			continue
		}
		placed += len(results[i].Orders)
	}
	assert.Equal(t, 1, placed)
	assert.False(t, mr.Exists(store.CartKey("user-1")))
	assert.False(t, mr.Exists(store.CheckoutLockKey("user-1")))
}

func TestCartService_CheckoutKeepsItemsAddedMeanwhile(t *testing.T) {
	ctx := context.Background()
	ordered := domain.MenuItem{ID: uuid.New(), VenueID: poolBar.ID, Name: "Mojito", Price: decimal.NewFromInt(8), IsAvailable: true}
	other := domain.MenuItem{ID: uuid.New(), VenueID: poolBar.ID, Name: "Nachos", Price: decimal.NewFromInt(6), IsAvailable: true}

	tests := []struct {
		name      string
		added     domain.MenuItem
		wantItem  uuid.UUID
		wantCount int
	}{
		{name: "different item", added: other, wantItem: other.ID, wantCount: 1},
		{name: "more of the ordered item", added: ordered, wantItem: ordered.ID, wantCount: 1},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store, _ := newCartStore(t)
			logger, _ := test.NewNullLogger()
			catalog := mocks.NewCatalogServiceInterface(t)
			placer := mocks.NewOrderServiceInterface(t)
			svc := cart.NewService(store, catalog, placer, 0, logger.WithField("service", "test"))

			seedCart(t, store, "user-1", cart.Item{MenuItemID: ordered.ID, VenueID: poolBar.ID, PriceEstimate: ordered.Price, Quantity: 1})
			catalog.On("GetMenuItem", mock.Anything, testCase.added.ID).Return(&testCase.added, nil).Once()
			placer.On("Create", mock.Anything, mock.Anything, mock.Anything).
				After(50*time.Millisecond).
				Return(&domain.Order{OrderNumber: "ORD-1"}, nil).Once()

			done := make(chan *cart.CheckoutResult)
			go func() {
				result, err := svc.Checkout(ctx, "user-1", uuid.New(), cart.CheckoutRequest{})
				assert.NoError(t, err)
				done <- result
			}()
			time.Sleep(10 * time.Millisecond)
			_, err := svc.AddItem(ctx, "user-1", testCase.added.ID, 1, "")
			require.NoError(t, err)
			result := <-done

			remaining, err := store.Load(ctx, "user-1")
			require.NoError(t, err)
			require.Len(t, remaining.Items, 1)
			assert.Equal(t, testCase.wantItem, remaining.Items[0].MenuItemID)
			assert.Equal(t, testCase.wantCount, remaining.Items[0].Quantity)
			require.NotNil(t, result)
			assert.Len(t, result.Cart.Items, 1)
		})
	}
}

func TestCartService_QuantityLimit(t *testing.T) {
	ctx := context.Background()
	store, _ := newCartStore(t)
	logger, _ := test.NewNullLogger()
	catalog := mocks.NewCatalogServiceInterface(t)
	svc := cart.NewService(store, catalog, mocks.NewOrderServiceInterface(t), 0, logger.WithField("service", "test"))

	seedCart(t, store, "user-1", cart.Item{MenuItemID: spritz.ID, VenueID: poolBar.ID, PriceEstimate: spritz.Price, Quantity: domain.MaxQuantity - 1})
	catalog.On("GetMenuItem", ctx, spritz.ID).Return(&spritz, nil).Twice()

	_, err := svc.AddItem(ctx, "user-1", spritz.ID, 2, "")
	assert.True(t, domain.IsValidation(err))

	c, err := svc.AddItem(ctx, "user-1", spritz.ID, 1, strings.Repeat("é", domain.MaxTextLength))
	require.NoError(t, err)
	assert.Equal(t, domain.MaxQuantity, c.Items[0].Quantity)

	_, err = svc.AddItem(ctx, "user-1", spritz.ID, domain.MaxQuantity+1, "")
	assert.True(t, domain.IsValidation(err))

	_, err = svc.UpdateQuantity(ctx, "user-1", spritz.ID, domain.MaxQuantity+1)
	assert.True(t, domain.IsValidation(err))

	reloaded, err := store.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.MaxQuantity, reloaded.Items[0].Quantity)
}

func TestRedisCartStore_UpdateRetriesAfterConcurrentWrite(t *testing.T) {
	ctx := context.Background()
	store, _ := newCartStore(t)
	a := cart.Item{MenuItemID: uuid.New(), VenueID: poolBar.ID, Quantity: 1}
	b := cart.Item{MenuItemID: uuid.New(), VenueID: poolBar.ID, Quantity: 1}
	c := cart.Item{MenuItemID: uuid.New(), VenueID: poolBar.ID, Quantity: 1}
	seedCart(t, store, "user-1", a)

	calls := 0
	updated, err := store.Update(ctx, "user-1", func(current *cart.Cart) error {
		calls++
		if calls == 1 {
			interloper := cart.New()
			interloper.AddItem(a)
			interloper.AddItem(b)
			require.NoError(t, store.Save(ctx, "user-1", interloper))
		}
		current.AddItem(c)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, updated.Items, 3)

	stored, err := store.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, stored.Items, 3)
}

func TestRedisCartStore_UpdateAbortsOnCallbackError(t *testing.T) {
	ctx := context.Background()
	store, _ := newCartStore(t)
	item := cart.Item{MenuItemID: uuid.New(), VenueID: poolBar.ID, Quantity: 1}
	seedCart(t, store, "user-1", item)

	_, err := store.Update(ctx, "user-1", func(current *cart.Cart) error {
		current.Clear()
		return assert.AnError
	})

	assert.ErrorIs(t, err, assert.AnError)
	stored, err := store.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, stored.Items, 1)
}

func TestRedisCartStore_LockCheckout(t *testing.T) {
	ctx := context.Background()
	store, mr := newCartStore(t)
	store.LockTTL = time.Second

	unlock, err := store.LockCheckout(ctx, "user-1")
	require.NoError(t, err)

	_, err = store.LockCheckout(ctx, "user-1")
	assert.ErrorIs(t, err, domain.ErrCheckoutInProgress)

	unlock()
	unlock, err = store.LockCheckout(ctx, "user-1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)
	unlockNext, err := store.LockCheckout(ctx, "user-1")
	require.NoError(t, err)

	// The expired holder must not release the lock it no longer owns.
	unlock()
	assert.True(t, mr.Exists(store.CheckoutLockKey("user-1")))
	unlockNext()
	assert.False(t, mr.Exists(store.CheckoutLockKey("user-1")))
}
