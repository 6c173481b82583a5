package api

import (
	"context"

	"foodhub-be/internal/category"
	"foodhub-be/internal/chat"
	"foodhub-be/internal/meal"
	"foodhub-be/internal/nutrition"
	"foodhub-be/internal/order"
	"foodhub-be/internal/provider"
	"foodhub-be/internal/review"
	"foodhub-be/internal/user"
	"foodhub-be/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// --- Users ---

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, in user.RegisterInput) (*user.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.AuthResult), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*user.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.AuthResult), args.Error(1)
}

func (m *MockUserService) Me(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, p user.UpdateProfileParams) (*user.User, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*user.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserService) UpdateUserStatus(ctx context.Context, actorID, targetID uuid.UUID, status user.Status) (*user.User, error) {
	args := m.Called(ctx, actorID, targetID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) IsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserService) EnsureAdmin(ctx context.Context, name, email, password string) (*user.User, bool, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*user.User), args.Bool(1), args.Error(2)
}

// --- Catalogue ---

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) GetCategories(ctx context.Context) ([]*category.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*category.Category), args.Error(1)
}

func (m *MockCategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryService) AddCategory(ctx context.Context, p category.CreateParams) (*category.Category, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryService) UpdateCategory(ctx context.Context, p category.UpdateParams) (*category.Category, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockMealService struct {
	mock.Mock
}

func (m *MockMealService) ListMeals(ctx context.Context, filter meal.ListFilter) ([]*meal.Meal, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*meal.Meal), args.Get(1).(int64), args.Error(2)
}

func (m *MockMealService) GetMeal(ctx context.Context, id uuid.UUID) (*meal.Detail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*meal.Detail), args.Error(1)
}

func (m *MockMealService) ListProviderMeals(ctx context.Context, providerID uuid.UUID, page utils.Page) ([]*meal.Meal, int64, error) {
	args := m.Called(ctx, providerID, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*meal.Meal), args.Get(1).(int64), args.Error(2)
}

func (m *MockMealService) CreateMeal(ctx context.Context, p meal.CreateParams) (*meal.Meal, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*meal.Meal), args.Error(1)
}

func (m *MockMealService) UpdateMeal(ctx context.Context, p meal.UpdateParams) (*meal.Meal, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*meal.Meal), args.Error(1)
}

func (m *MockMealService) DeleteMeal(ctx context.Context, providerID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, providerID, id)
	return args.Bool(0), args.Error(1)
}

type MockProviderService struct {
	mock.Mock
}

func (m *MockProviderService) ListProviders(ctx context.Context, filter provider.ListFilter) ([]*provider.Provider, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*provider.Provider), args.Get(1).(int64), args.Error(2)
}

func (m *MockProviderService) GetProvider(ctx context.Context, userID uuid.UUID) (*provider.Provider, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Provider), args.Error(1)
}

func (m *MockProviderService) GetOwnProfile(ctx context.Context, userID uuid.UUID) (*provider.Provider, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Provider), args.Error(1)
}

func (m *MockProviderService) UpdateOwnProfile(ctx context.Context, p provider.UpdateProfileParams) (*provider.Profile, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Profile), args.Error(1)
}

// --- Orders & reviews ---

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, customerID uuid.UUID, in order.CreateInput) (*order.Order, error) {
	args := m.Called(ctx, customerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) GetCustomerOrders(ctx context.Context, customerID uuid.UUID, status order.Status, page utils.Page) ([]*order.Order, int64, error) {
	args := m.Called(ctx, customerID, status, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*order.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderService) GetOrderByID(ctx context.Context, actor order.Actor, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateOrderStatus(ctx context.Context, actor order.Actor, id uuid.UUID, status order.Status, note string) (*order.Order, error) {
	args := m.Called(ctx, actor, id, status, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) CancelOrder(ctx context.Context, customerID, id uuid.UUID, reason string) (*order.Order, error) {
	args := m.Called(ctx, customerID, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) GetProviderOrders(ctx context.Context, actor order.Actor, status order.Status, date string, page utils.Page) ([]*order.Order, int64, error) {
	args := m.Called(ctx, actor, status, date, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*order.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderService) GetStatistics(ctx context.Context, actor order.Actor) (*order.Statistics, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Statistics), args.Error(1)
}

func (m *MockOrderService) AdminListOrders(ctx context.Context, status order.Status, page utils.Page) ([]*order.Order, int64, error) {
	args := m.Called(ctx, status, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*order.Order), args.Get(1).(int64), args.Error(2)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) CreateReview(ctx context.Context, customerID uuid.UUID, in review.CreateInput) (*review.Review, error) {
	args := m.Called(ctx, customerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

func (m *MockReviewService) ListMealReviews(ctx context.Context, mealID uuid.UUID, page utils.Page) (*review.MealReviews, error) {
	args := m.Called(ctx, mealID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.MealReviews), args.Error(1)
}

func (m *MockReviewService) ListMyReviews(ctx context.Context, customerID uuid.UUID, page utils.Page) ([]*review.Review, int64, error) {
	args := m.Called(ctx, customerID, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*review.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewService) DeleteReview(ctx context.Context, actorID uuid.UUID, actorRole string, reviewID uuid.UUID) error {
	return m.Called(ctx, actorID, actorRole, reviewID).Error(0)
}

// --- Assistant ---

type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Chat(ctx context.Context, message string, history []chat.Message) (string, error) {
	args := m.Called(ctx, message, history)
	return args.String(0), args.Error(1)
}

type MockNutritionService struct {
	mock.Mock
}

func (m *MockNutritionService) Lookup(ctx context.Context, query string) (*nutrition.Result, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*nutrition.Result), args.Error(1)
}
