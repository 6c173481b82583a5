package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"foodhub-be/internal/metrics"
	"foodhub-be/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetAvailableMeals(ctx context.Context, ids []uuid.UUID) ([]MealRef, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]MealRef), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, o *Order, note string) (*Order, error) {
	args := m.Called(ctx, o, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter ListFilter) ([]*Order, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) ItemsByOrders(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]*Item, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]*Item), args.Error(1)
}

func (m *MockRepository) History(ctx context.Context, id uuid.UUID) ([]*StatusHistory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*StatusHistory), args.Error(1)
}

func (m *MockRepository) LatestHistory(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*StatusHistory, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*StatusHistory), args.Error(1)
}

func (m *MockRepository) Reviews(ctx context.Context, id uuid.UUID) ([]*Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Review), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, u StatusUpdate) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockRepository) Statistics(ctx context.Context, providerID *uuid.UUID, since time.Time) (*Statistics, error) {
	args := m.Called(ctx, providerID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Statistics), args.Error(1)
}

var fixedNow = time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)

func newTestService(repo Repository, m *metrics.Metrics) *service {
	return &service{repo: repo, metrics: m, now: func() time.Time { return fixedNow }}
}

// counterValue reads a counter from the registry, matching label values in order.
func counterValue(t *testing.T, m *metrics.Metrics, name string, labelValues ...string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, metric := range mf.GetMetric() {
			labels := metric.GetLabel()
			if len(labels) != len(labelValues) {
				continue
			}
			for i, lp := range labels {
				if lp.GetValue() != labelValues[i] {
					continue next
				}
			}
			return metric.GetCounter().GetValue()
		}
	}
	return 0
}

// expectDetail stubs the reload done after writes.
func expectDetail(repo *MockRepository, ctx context.Context, o *Order) {
	repo.On("GetByID", ctx, o.ID).Return(o, nil)
	repo.On("ItemsByOrders", ctx, []uuid.UUID{o.ID}).Return(map[uuid.UUID][]*Item{o.ID: {{MealID: uuid.New()}}}, nil)
	repo.On("History", ctx, o.ID).Return([]*StatusHistory{{Status: o.Status}}, nil)
}

// --- Tests ---

func TestMergeItems(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	merged, err := mergeItems([]ItemInput{{a, 1}, {b, 2}, {a, 3}})
	require.NoError(t, err)
	assert.Equal(t, []ItemInput{{a, 4}, {b, 2}}, merged)

	_, err = mergeItems([]ItemInput{{a, 0}})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = mergeItems([]ItemInput{{a, MaxItemQuantity + 1}})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = mergeItems([]ItemInput{{a, 1 << 40}})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = mergeItems([]ItemInput{{a, 60}, {b, 1}, {a, 41}})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	merged, err = mergeItems([]ItemInput{{a, 60}, {a, 40}})
	require.NoError(t, err)
	assert.Equal(t, []ItemInput{{a, MaxItemQuantity}}, merged)

	_, err = mergeItems([]ItemInput{{uuid.Nil, 1}})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestService_CreateOrder(t *testing.T) {
	ctx := context.Background()
	customer, provider := uuid.New(), uuid.New()
	m1, m2 := uuid.New(), uuid.New()

	validInput := func() CreateInput {
		return CreateInput{
			Items:           []ItemInput{{m1, 2}, {m2, 1}, {m1, 1}},
			DeliveryAddress: " 1 Main St ",
			ContactPhone:    "0812",
		}
	}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		m := metrics.New(nil)
		svc := newTestService(repo, m)
		orderID := uuid.New()

		repo.On("GetAvailableMeals", ctx, []uuid.UUID{m1, m2}).Return([]MealRef{
			{ID: m1, ProviderID: provider, Price: 10},
			{ID: m2, ProviderID: provider, Price: 4.5},
		}, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(o *Order) bool {
			eta := fixedNow.Add(45 * time.Minute)
			return o.CustomerID == customer &&
				o.ProviderID == provider &&
				o.Status == StatusPending &&
				o.PaymentStatus == PaymentPending &&
				o.PaymentMethod == PaymentCashOnDelivery &&
				o.TotalAmount == 34.5 &&
				o.DeliveryAddress == "1 Main St" &&
				o.EstimatedDeliveryTime.Equal(eta) &&
				len(o.Items) == 2 &&
				o.Items[0].Quantity == 3 &&
				o.Items[0].PriceAtOrder == 10
		}), "Order placed successfully").Return(&Order{ID: orderID, TotalAmount: 34.5}, nil)
		expectDetail(repo, ctx, &Order{ID: orderID, Status: StatusPending})

		o, err := svc.CreateOrder(ctx, customer, validInput())
		require.NoError(t, err)
		assert.Equal(t, orderID, o.ID)
		assert.Len(t, o.History, 1)
		assert.Equal(t, 1.0, counterValue(t, m, "foodhub_orders_created_total"))
		repo.AssertExpectations(t)
	})

	t.Run("MissingFields", func(t *testing.T) {
		svc := newTestService(new(MockRepository), nil)

		in := validInput()
		in.ContactPhone = "  "
		_, err := svc.CreateOrder(ctx, customer, in)
		assert.ErrorIs(t, err, ErrMissingFields)

		_, err = svc.CreateOrder(ctx, customer, CreateInput{DeliveryAddress: "x", ContactPhone: "y"})
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("InvalidPaymentMethod", func(t *testing.T) {
		svc := newTestService(new(MockRepository), nil)

		in := validInput()
		in.PaymentMethod = "BITCOIN"
		_, err := svc.CreateOrder(ctx, customer, in)
		assert.ErrorIs(t, err, ErrInvalidPayment)
	})

	t.Run("UnavailableMeal", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil)

		repo.On("GetAvailableMeals", ctx, []uuid.UUID{m1, m2}).
			Return([]MealRef{{ID: m1, ProviderID: provider, Price: 10}}, nil)

		_, err := svc.CreateOrder(ctx, customer, validInput())
		assert.ErrorIs(t, err, ErrMealsUnavailable)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MixedProviders", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil)

		repo.On("GetAvailableMeals", ctx, []uuid.UUID{m1, m2}).Return([]MealRef{
			{ID: m1, ProviderID: provider, Price: 10},
			{ID: m2, ProviderID: uuid.New(), Price: 4.5},
		}, nil)

		_, err := svc.CreateOrder(ctx, customer, validInput())
		assert.ErrorIs(t, err, ErrMixedProviders)
	})

	t.Run("QuantityOverLimit", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil)

		in := validInput()
		in.Items = []ItemInput{{m1, 1000000}}
		_, err := svc.CreateOrder(ctx, customer, in)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		repo.AssertNotCalled(t, "GetAvailableMeals", mock.Anything, mock.Anything)
	})

	t.Run("TotalTooLarge", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil)

		repo.On("GetAvailableMeals", ctx, []uuid.UUID{m1}).Return([]MealRef{
			{ID: m1, ProviderID: provider, Price: 5_000_000},
		}, nil)

		in := validInput()
		in.Items = []ItemInput{{m1, MaxItemQuantity}}
		_, err := svc.CreateOrder(ctx, customer, in)
		assert.ErrorIs(t, err, ErrTotalTooLarge)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RepoError", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil)

		repo.On("GetAvailableMeals", ctx, mock.Anything).Return(nil, errors.New("db down"))

		_, err := svc.CreateOrder(ctx, customer, validInput())
		assert.EqualError(t, err, "db down")
	})
}

func TestService_GetOrderByID(t *testing.T) {
	ctx := context.Background()
	customer, provider := uuid.New(), uuid.New()
	o := &Order{ID: uuid.New(), CustomerID: customer, ProviderID: provider, Status: StatusPending}

	tests := []struct {
		name    string
		actor   Actor
		wantErr error
	}{
		{name: "Owner", actor: Actor{ID: customer, Role: RoleCustomer}},
		{name: "Provider", actor: Actor{ID: provider, Role: RoleProvider}},
		{name: "Admin", actor: Actor{ID: uuid.New(), Role: RoleAdmin}},
		{name: "OtherCustomer", actor: Actor{ID: uuid.New(), Role: RoleCustomer}, wantErr: ErrForbidden},
		{name: "OtherProvider", actor: Actor{ID: uuid.New(), Role: RoleProvider}, wantErr: ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			svc := newTestService(repo, nil)
			expectDetail(repo, ctx, o)
			repo.On("Reviews", ctx, o.ID).Return([]*Review{}, nil)

			got, err := svc.GetOrderByID(ctx, tt.actor, o.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, o.ID, got.ID)
		})
	}

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil)
		repo.On("GetByID", ctx, mock.Anything).Return(nil, ErrOrderNotFound)

		_, err := svc.GetOrderByID(ctx, Actor{ID: customer, Role: RoleCustomer}, uuid.New())
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestService_UpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	customer, provider := uuid.New(), uuid.New()
	providerActor := Actor{ID: provider, Role: RoleProvider}

	order := func(status Status) *Order {
		return &Order{ID: uuid.New(), CustomerID: customer, ProviderID: provider, Status: status}
	}

	t.Run("InvalidStatus", func(t *testing.T) {
		svc := newTestService(new(MockRepository), nil)
		_, err := svc.UpdateOrderStatus(ctx, providerActor, uuid.New(), "COOKING", "")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil)
		repo.On("GetByID", ctx, mock.Anything).Return(nil, ErrOrderNotFound)

		_, err := svc.UpdateOrderStatus(ctx, providerActor, uuid.New(), StatusConfirmed, "")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("ProviderAdvances", func(t *testing.T) {
		repo := new(MockRepository)
		m := metrics.New(nil)
		svc := newTestService(repo, m)
		o := order(StatusPending)

		repo.On("GetByID", ctx, o.ID).Return(o, nil).Once()
		repo.On("UpdateStatus", ctx, StatusUpdate{
			OrderID: o.ID,
			From:    []Status{StatusPending},
			To:      StatusConfirmed,
			Note:    "Order status updated to CONFIRMED",
		}).Return(nil)
		expectDetail(repo, ctx, o)

		_, err := svc.UpdateOrderStatus(ctx, providerActor, o.ID, StatusConfirmed, "  ")
		require.NoError(t, err)
		assert.Equal(t, 1.0, counterValue(t, m, "foodhub_order_status_changes_total", "CONFIRMED"))
		repo.AssertExpectations(t)
	})

	t.Run("DeliveredMarksPaid", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil)
		o := order(StatusOutForDelivery)

		repo.On("GetByID", ctx, o.ID).Return(o, nil).Once()
		repo.On("UpdateStatus", ctx, mock.MatchedBy(func(u StatusUpdate) bool {
			return u.To == StatusDelivered &&
				u.PaymentStatus != nil && *u.PaymentStatus == PaymentPaid &&
				u.DeliveredAt != nil && u.DeliveredAt.Equal(fixedNow) &&
				u.Note == "left at door"
		})).Return(nil)
		expectDetail(repo, ctx, o)

		_, err := svc.UpdateOrderStatus(ctx, Actor{ID: uuid.New(), Role: RoleAdmin}, o.ID, StatusDelivered, "left at door")
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("ForeignProvider", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil)
		o := order(StatusPending)
		repo.On("GetByID", ctx, o.ID).Return(o, nil)

		_, err := svc.UpdateOrderStatus(ctx, Actor{ID: uuid.New(), Role: RoleProvider}, o.ID, StatusConfirmed, "")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("ForeignCustomer", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil)
		o := order(StatusPending)
		repo.On("GetByID", ctx, o.ID).Return(o, nil)

		_, err := svc.UpdateOrderStatus(ctx, Actor{ID: uuid.New(), Role: RoleCustomer}, o.ID, StatusCancelled, "")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("CustomerCanOnlyCancelPending", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil)
		o := order(StatusConfirmed)
		repo.On("GetByID", ctx, o.ID).Return(o, nil)

		_, err := svc.UpdateOrderStatus(ctx, Actor{ID: customer, Role: RoleCustomer}, o.ID, StatusCancelled, "")
		assert.ErrorIs(t, err, ErrCustomerCancelOnly)

		_, err = svc.UpdateOrderStatus(ctx, Actor{ID: customer, Role: RoleCustomer}, o.ID, StatusDelivered, "")
		assert.ErrorIs(t, err, ErrCustomerCancelOnly)
	})

	t.Run("CustomerCancelsPending", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil)
		o := order(StatusPending)

		repo.On("GetByID", ctx, o.ID).Return(o, nil).Once()
		repo.On("UpdateStatus", ctx, mock.MatchedBy(func(u StatusUpdate) bool {
			return u.To == StatusCancelled &&
				u.CancellationReason != nil && *u.CancellationReason == "Customer cancelled" &&
				u.Note == "Order status updated to CANCELLED"
		})).Return(nil)
		expectDetail(repo, ctx, o)

		_, err := svc.UpdateOrderStatus(ctx, Actor{ID: customer, Role: RoleCustomer}, o.ID, StatusCancelled, "")
		require.NoError(t, err)
	})

	t.Run("CustomerCancelNoteBecomesReason", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil)
		o := order(StatusPending)

		repo.On("GetByID", ctx, o.ID).Return(o, nil).Once()
		repo.On("UpdateStatus", ctx, mock.MatchedBy(func(u StatusUpdate) bool {
			return *u.CancellationReason == "Ordered twice" && u.Note == "Ordered twice"
		})).Return(nil)
		expectDetail(repo, ctx, o)

		_, err := svc.UpdateOrderStatus(ctx, Actor{ID: customer, Role: RoleCustomer}, o.ID, StatusCancelled, " Ordered twice ")
		require.NoError(t, err)
	})

	t.Run("ProviderCancelUsesNote", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil)
		o := order(StatusConfirmed)

		repo.On("GetByID", ctx, o.ID).Return(o, nil).Once()
		repo.On("UpdateStatus", ctx, mock.MatchedBy(func(u StatusUpdate) bool {
			return *u.CancellationReason == "Order status updated to CANCELLED"
		})).Return(nil)
		expectDetail(repo, ctx, o)

		_, err := svc.UpdateOrderStatus(ctx, providerActor, o.ID, StatusCancelled, "")
		require.NoError(t, err)
	})

	t.Run("TerminalOrder", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil)
		o := order(StatusDelivered)
		repo.On("GetByID", ctx, o.ID).Return(o, nil)

		_, err := svc.UpdateOrderStatus(ctx, providerActor, o.ID, StatusPreparing, "")
		assert.ErrorIs(t, err, ErrInvalidTransition)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	})

	t.Run("LostRace", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil)
		o := order(StatusPending)
		repo.On("GetByID", ctx, o.ID).Return(o, nil)
		repo.On("UpdateStatus", ctx, mock.Anything).Return(ErrInvalidTransition)

		_, err := svc.UpdateOrderStatus(ctx, providerActor, o.ID, StatusConfirmed, "")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestService_CancelOrder(t *testing.T) {
	ctx := context.Background()
	customer := uuid.New()

	t.Run("DefaultReason", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil)
		o := &Order{ID: uuid.New(), CustomerID: customer, Status: StatusConfirmed}
		reason := "Customer cancelled"

		repo.On("GetByID", ctx, o.ID).Return(o, nil).Once()
		repo.On("UpdateStatus", ctx, StatusUpdate{
			OrderID:            o.ID,
			From:               []Status{StatusPending, StatusConfirmed},
			To:                 StatusCancelled,
			Note:               "Cancelled by customer",
			CancellationReason: &reason,
		}).Return(nil)
		expectDetail(repo, ctx, o)

		_, err := svc.CancelOrder(ctx, customer, o.ID, "")
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("CustomReason", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil)
		o := &Order{ID: uuid.New(), CustomerID: customer, Status: StatusPending}

		repo.On("GetByID", ctx, o.ID).Return(o, nil).Once()
		repo.On("UpdateStatus", ctx, mock.MatchedBy(func(u StatusUpdate) bool {
			return u.Note == "changed my mind" && *u.CancellationReason == "changed my mind"
		})).Return(nil)
		expectDetail(repo, ctx, o)

		_, err := svc.CancelOrder(ctx, customer, o.ID, "changed my mind")
		require.NoError(t, err)
	})

	t.Run("NotOwner", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil)
		o := &Order{ID: uuid.New(), CustomerID: uuid.New(), Status: StatusPending}
		repo.On("GetByID", ctx, o.ID).Return(o, nil)

		_, err := svc.CancelOrder(ctx, customer, o.ID, "")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("TooLate", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil)
		o := &Order{ID: uuid.New(), CustomerID: customer, Status: StatusPreparing}
		repo.On("GetByID", ctx, o.ID).Return(o, nil)

		_, err := svc.CancelOrder(ctx, customer, o.ID, "")
		assert.ErrorIs(t, err, ErrNotCancellable)
	})

	t.Run("LostRace", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil)
		o := &Order{ID: uuid.New(), CustomerID: customer, Status: StatusPending}
		repo.On("GetByID", ctx, o.ID).Return(o, nil)
		repo.On("UpdateStatus", ctx, mock.Anything).Return(ErrInvalidTransition)

		_, err := svc.CancelOrder(ctx, customer, o.ID, "")
		assert.ErrorIs(t, err, ErrNotCancellable)
	})
}

func TestService_GetCustomerOrders(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := newTestService(repo, nil)
	customer := uuid.New()
	page := utils.Page{Page: 1, Limit: 10}
	o := &Order{ID: uuid.New(), Customer: &CustomerSummary{}}

	repo.On("List", ctx, ListFilter{CustomerID: &customer, Status: StatusPending, Page: page}).
		Return([]*Order{o}, int64(1), nil)
	repo.On("ItemsByOrders", ctx, []uuid.UUID{o.ID}).Return(map[uuid.UUID][]*Item{}, nil)

	orders, total, err := svc.GetCustomerOrders(ctx, customer, StatusPending, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, orders, 1)
	assert.Nil(t, orders[0].Customer)
	assert.NotNil(t, orders[0].Items)

	_, _, err = svc.GetCustomerOrders(ctx, customer, "LOST", page)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_GetProviderOrders(t *testing.T) {
	ctx := context.Background()
	provider := uuid.New()
	page := utils.Page{Page: 1, Limit: 20}

	t.Run("DateFilterAndLatestHistory", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil)
		o := &Order{ID: uuid.New()}
		day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		next := day.AddDate(0, 0, 1)

		repo.On("List", ctx, mock.MatchedBy(func(f ListFilter) bool {
			return f.ProviderID != nil && *f.ProviderID == provider &&
				f.From.Equal(day) && f.To.Equal(next)
		})).Return([]*Order{o}, int64(1), nil)
		repo.On("ItemsByOrders", ctx, []uuid.UUID{o.ID}).Return(map[uuid.UUID][]*Item{}, nil)
		repo.On("LatestHistory", ctx, []uuid.UUID{o.ID}).
			Return(map[uuid.UUID]*StatusHistory{o.ID: {Status: StatusConfirmed}}, nil)

		orders, _, err := svc.GetProviderOrders(ctx, Actor{ID: provider, Role: RoleProvider}, "", "2026-03-01", page)
		require.NoError(t, err)
		require.Len(t, orders[0].History, 1)
		assert.Equal(t, StatusConfirmed, orders[0].History[0].Status)
	})

	t.Run("AdminSeesAll", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, nil)

		repo.On("List", ctx, ListFilter{Page: page}).Return([]*Order{}, int64(0), nil)
		repo.On("ItemsByOrders", ctx, []uuid.UUID{}).Return(map[uuid.UUID][]*Item{}, nil)
		repo.On("LatestHistory", ctx, []uuid.UUID{}).Return(map[uuid.UUID]*StatusHistory{}, nil)

		_, _, err := svc.GetProviderOrders(ctx, Actor{ID: uuid.New(), Role: RoleAdmin}, "", "", page)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("BadDate", func(t *testing.T) {
		svc := newTestService(new(MockRepository), nil)

		_, _, err := svc.GetProviderOrders(ctx, Actor{ID: provider, Role: RoleProvider}, "", "03/01/2026", page)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestService_GetStatistics(t *testing.T) {
	ctx := context.Background()
	midnight := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	provider := uuid.New()

	repo := new(MockRepository)
	svc := newTestService(repo, nil)

	repo.On("Statistics", ctx, &provider, midnight).Return(&Statistics{Total: 3}, nil)
	repo.On("Statistics", ctx, (*uuid.UUID)(nil), midnight).Return(&Statistics{Total: 30}, nil)

	stats, err := svc.GetStatistics(ctx, Actor{ID: provider, Role: RoleProvider})
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)

	stats, err = svc.GetStatistics(ctx, Actor{ID: uuid.New(), Role: RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, int64(30), stats.Total)
}

func TestService_AdminListOrders(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := newTestService(repo, nil)
	page := utils.Page{Page: 2, Limit: 5}
	o := &Order{ID: uuid.New()}

	repo.On("List", ctx, ListFilter{Status: StatusDelivered, Page: page}).Return([]*Order{o}, int64(6), nil)
	repo.On("ItemsByOrders", ctx, []uuid.UUID{o.ID}).Return(map[uuid.UUID][]*Item{o.ID: {{}}}, nil)

	orders, total, err := svc.AdminListOrders(ctx, StatusDelivered, page)
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	assert.Len(t, orders[0].Items, 1)
}
