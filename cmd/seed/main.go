package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"time"

	"foodhub-be/internal/auth"
	"foodhub-be/internal/category"
	"foodhub-be/internal/config"
	"foodhub-be/internal/db"
	"foodhub-be/internal/logger"
	"foodhub-be/internal/meal"
	"foodhub-be/internal/review"
	"foodhub-be/internal/user"
	"foodhub-be/internal/utils"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	adminName        = "FoodHub Admin"
	demoPassword     = "password123"
	defaultProviders = 5
	defaultMeals     = 6
)

var demoCategories = []string{"Burgers", "Pizza", "Sushi", "Salads", "Desserts", "Drinks"}

var demoCuisines = []string{"American", "Italian", "Japanese", "Mexican", "Indian", "Mediterranean"}

var demoDietary = []string{"vegan", "vegetarian", "gluten-free", "halal", "spicy"}

type accounts interface {
	Register(ctx context.Context, in user.RegisterInput) (*user.AuthResult, error)
	EnsureAdmin(ctx context.Context, name, email, password string) (*user.User, bool, error)
}

type categories interface {
	GetCategories(ctx context.Context) ([]*category.Category, error)
	AddCategory(ctx context.Context, p category.CreateParams) (*category.Category, error)
}

type meals interface {
	CreateMeal(ctx context.Context, p meal.CreateParams) (*meal.Meal, error)
}

type seeder struct {
	users      accounts
	categories categories
	meals      meals
	faker      *gofakeit.Faker
	log        *zap.Logger
}

func main() {
	demo := flag.Bool("demo", false, "also create demo categories, providers and meals")
	providers := flag.Int("providers", defaultProviders, "number of demo providers")
	mealsPer := flag.Int("meals", defaultMeals, "number of meals per demo provider")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed for demo data")
	flag.Parse()

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv, cfg.LogLevel)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	s := &seeder{
		users:      user.NewService(user.NewRepository(database), tokens),
		categories: category.NewService(category.NewRepository(database), nil),
		meals:      meal.NewService(meal.NewRepository(database), review.NewRepository(database), nil),
		faker:      gofakeit.New(*seed),
		log:        logger.L(),
	}

	ctx := context.Background()
	if err := s.seedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if *demo {
		if err := s.seedDemo(ctx, *providers, *mealsPer); err != nil {
			log.Fatalf("seed demo data: %v", err)
		}
	}
}

func (s *seeder) seedAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	u, created, err := s.users.EnsureAdmin(ctx, adminName, email, password)
	if err != nil {
		return err
	}
	if !created {
		s.log.Info("admin already exists", zap.String("email", u.Email))
		return nil
	}
	s.log.Info("admin created", zap.String("email", u.Email), zap.String("id", u.ID.String()))
	return nil
}

// ensureCategories creates the demo categories that do not exist yet and
// returns every category by name.
func (s *seeder) ensureCategories(ctx context.Context) ([]*category.Category, error) {
	existing, err := s.categories.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	byName := make(map[string]*category.Category, len(existing))
	for _, c := range existing {
		byName[c.Name] = c
	}

	out := make([]*category.Category, 0, len(demoCategories))
	for _, name := range demoCategories {
		if c, ok := byName[name]; ok {
			out = append(out, c)
			continue
		}
		c, err := s.categories.AddCategory(ctx, category.CreateParams{
			Name:        name,
			Description: utils.StrPtr(s.faker.Sentence(6)),
		})
		if err != nil {
			return nil, fmt.Errorf("create category %q: %w", name, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *seeder) seedDemo(ctx context.Context, providers, mealsPer int) error {
	cats, err := s.ensureCategories(ctx)
	if err != nil {
		return err
	}

	var createdMeals int
	for i := 0; i < providers; i++ {
		res, err := s.users.Register(ctx, s.fakeProvider())
		if errors.Is(err, user.ErrEmailExists) {
			continue
		}
		if err != nil {
			return fmt.Errorf("register provider: %w", err)
		}

		for j := 0; j < mealsPer; j++ {
			cat := cats[s.faker.IntRange(0, len(cats)-1)]
			if _, err := s.meals.CreateMeal(ctx, s.fakeMeal(res.User.ID, cat)); err != nil {
				return fmt.Errorf("create meal: %w", err)
			}
			createdMeals++
		}
	}

	s.log.Info("demo data seeded",
		zap.Int("categories", len(cats)),
		zap.Int("providers", providers),
		zap.Int("meals", createdMeals),
	)
	return nil
}

func (s *seeder) fakeProvider() user.RegisterInput {
	return user.RegisterInput{
		Name:           s.faker.Name(),
		Email:          s.faker.Email(),
		Password:       demoPassword,
		Role:           user.RoleProvider,
		Phone:          utils.StrPtr(s.faker.Phone()),
		Address:        utils.StrPtr(s.faker.Street() + ", " + s.faker.City()),
		RestaurantName: s.faker.Company() + " Kitchen",
		CuisineType:    utils.StrPtr(s.faker.RandomString(demoCuisines)),
		Description:    utils.StrPtr(s.faker.Sentence(10)),
	}
}

func (s *seeder) fakeMeal(providerID uuid.UUID, cat *category.Category) meal.CreateParams {
	dietary := make([]string, 0, 2)
	for _, tag := range demoDietary {
		if s.faker.IntRange(0, 3) == 0 {
			dietary = append(dietary, tag)
		}
	}

	name := s.faker.Dinner()
	switch cat.Name {
	case "Desserts":
		name = s.faker.Dessert()
	case "Drinks":
		name = s.faker.Drink()
	}

	prep := s.faker.IntRange(10, 45)
	price := math.Round(s.faker.Float64Range(4, 35)*100) / 100

	return meal.CreateParams{
		ProviderID:  providerID,
		CategoryID:  cat.ID,
		Name:        name,
		Description: utils.StrPtr(s.faker.Sentence(12)),
		Price:       price,
		DietaryInfo: dietary,
		PrepTime:    &prep,
	}
}
