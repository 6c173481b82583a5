package nutrition

import (
	"context"
	"math"
	"strings"

	"foodhub-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	// Lookup returns ErrNoResults when the database has no match.
	Lookup(ctx context.Context, query string) (*Result, error)
}

type service struct {
	client Searcher
}

func NewService(client Searcher) Service {
	return &service{client: client}
}

func findNutrient(nutrients []SearchNutrient, id int) int {
	for _, n := range nutrients {
		if n.NutrientID == id {
			return int(math.Round(n.Value))
		}
	}
	return 0
}

func toFood(f SearchFood) Food {
	food := Food{
		Name: f.Description,
		Nutrition: Facts{
			Calories: findNutrient(f.FoodNutrients, NutrientCalories),
			Protein:  findNutrient(f.FoodNutrients, NutrientProtein),
			Carbs:    findNutrient(f.FoodNutrients, NutrientCarbs),
			Fat:      findNutrient(f.FoodNutrients, NutrientFat),
			Sodium:   findNutrient(f.FoodNutrients, NutrientSodium),
		},
	}
	if f.BrandOwner != "" {
		brand := f.BrandOwner
		food.Brand = &brand
	}
	return food
}

func (s *service) Lookup(ctx context.Context, query string) (*Result, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, ErrEmptyQuery
	}
	if !s.client.Configured() {
		return nil, ErrNotConfigured
	}

	res, err := s.client.Search(ctx, trimmed)
	if err != nil {
		return nil, err
	}

	if len(res.Foods) == 0 {
		logger.FromCtx(ctx).Info("no nutrition data found", zap.String("query", trimmed))
		return nil, ErrNoResults
	}

	foods := make([]Food, len(res.Foods))
	for i, f := range res.Foods {
		foods[i] = toFood(f)
	}

	return &Result{
		Query:        query,
		TotalFound:   res.TotalHits,
		BestMatch:    foods[0],
		Alternatives: foods[1:],
	}, nil
}
