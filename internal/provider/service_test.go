package provider

import (
	"context"
	"errors"
	"testing"

	"foodhub-be/internal/meal"
	"foodhub-be/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, filter ListFilter) ([]*Provider, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*Provider), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*Provider, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Provider), args.Error(1)
}

func (m *MockRepository) UpdateProfile(ctx context.Context, p UpdateProfileParams) (*Profile, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

// MockMealRepository only implements the listing used by this package.
type MockMealRepository struct {
	mock.Mock
	meal.Repository
}

func (m *MockMealRepository) List(ctx context.Context, filter meal.ListFilter) ([]*meal.Meal, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*meal.Meal), args.Get(1).(int64), args.Error(2)
}

func TestService_GetProvider(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Attaches Available Meals", func(t *testing.T) {
		repo := new(MockRepository)
		meals := new(MockMealRepository)
		svc := NewService(repo, meals, nil)

		repo.On("GetByUserID", ctx, id).Return(&Provider{Profile: Profile{UserID: id, RestaurantName: "Casa"}}, nil)
		meals.On("List", ctx, mock.MatchedBy(func(f meal.ListFilter) bool {
			return f.AvailableOnly && f.ProviderID != nil && *f.ProviderID == id && f.Page.Limit == utils.MaxPageLimit
		})).Return([]*meal.Meal{{Name: "Tacos"}}, int64(1), nil)

		p, err := svc.GetProvider(ctx, id)
		assert.NoError(t, err)
		assert.Len(t, p.Meals, 1)
		meals.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockMealRepository), nil)
		repo.On("GetByUserID", ctx, id).Return(nil, ErrProviderNotFound)

		_, err := svc.GetProvider(ctx, id)
		assert.ErrorIs(t, err, ErrProviderNotFound)
	})

	t.Run("Meals Error", func(t *testing.T) {
		repo := new(MockRepository)
		meals := new(MockMealRepository)
		svc := NewService(repo, meals, nil)
		repo.On("GetByUserID", ctx, id).Return(&Provider{}, nil)
		meals.On("List", ctx, mock.Anything).Return(nil, int64(0), errors.New("db error"))

		_, err := svc.GetProvider(ctx, id)
		assert.Error(t, err)
	})
}

func TestService_UpdateOwnProfile(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Blank Restaurant Name", func(t *testing.T) {
		svc := NewService(new(MockRepository), nil, nil)
		blank := "  "
		_, err := svc.UpdateOwnProfile(ctx, UpdateProfileParams{UserID: id, RestaurantName: &blank})
		assert.ErrorIs(t, err, ErrRestaurantNameRequired)
	})

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil, nil)
		name := "Casa Nueva"
		repo.On("UpdateProfile", ctx, UpdateProfileParams{UserID: id, RestaurantName: &name}).
			Return(&Profile{UserID: id, RestaurantName: name}, nil)

		res, err := svc.UpdateOwnProfile(ctx, UpdateProfileParams{UserID: id, RestaurantName: &name})
		assert.NoError(t, err)
		assert.Equal(t, name, res.RestaurantName)
	})
}
