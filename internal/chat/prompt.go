package chat

import (
	"fmt"
	"strings"

	"foodhub-be/internal/utils"
)

const (
	maxHistory            = 20
	descriptionPreviewLen = 80
)

const systemPromptTemplate = `You are FoodHub Assistant, a friendly helper for the FoodHub food ordering app.

You help customers find meals, answer questions about the menu and point them to what they are looking for.

CURRENT MENU DATA (answer from this data only):

=== AVAILABLE MEALS ===
%s

=== CATEGORIES ===
%s

=== RESTAURANTS ===
%s

RULES:
- Only recommend meals listed in the menu data above
- When recommending a meal, mention its name, price and restaurant
- Be friendly, concise and helpful
- If something is not on the menu, say so honestly
- For dietary questions (vegetarian, vegan, halal and so on) use the dietary tags
- For price questions use the listed prices
- Keep answers to 3-5 sentences unless listing several items
- If the menu is empty, apologize and suggest checking back later`

func orDefault(s *string, def string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return def
	}
	return *s
}

func mealLine(m CatalogueMeal) string {
	prep := "?"
	if m.PrepTime != nil && *m.PrepTime > 0 {
		prep = fmt.Sprintf("%d", *m.PrepTime)
	}
	return fmt.Sprintf("- %s | $%.2f | %s | %s | %s | Prep: %s min | %s",
		m.Name,
		m.Price,
		orDefault(m.CategoryName, "Uncategorized"),
		strings.Join(m.DietaryInfo, ", "),
		orDefault(m.RestaurantName, "Unknown restaurant"),
		prep,
		utils.Truncate(utils.PtrString(m.Description), descriptionPreviewLen),
	)
}

func restaurantLine(p CatalogueProvider) string {
	if p.CuisineType != nil && *p.CuisineType != "" {
		return fmt.Sprintf("- %s (%s)", p.RestaurantName, *p.CuisineType)
	}
	return "- " + p.RestaurantName
}

// BuildSystemPrompt renders the assistant persona around the catalogue.
func BuildSystemPrompt(c *Catalogue) string {
	meals := make([]string, 0, len(c.Meals))
	for _, m := range c.Meals {
		meals = append(meals, mealLine(m))
	}
	restaurants := make([]string, 0, len(c.Providers))
	for _, p := range c.Providers {
		restaurants = append(restaurants, restaurantLine(p))
	}

	mealsText := strings.Join(meals, "\n")
	if mealsText == "" {
		mealsText = "No meals available right now."
	}
	categoriesText := strings.Join(c.Categories, ", ")
	if categoriesText == "" {
		categoriesText = "No categories available."
	}
	restaurantsText := strings.Join(restaurants, "\n")
	if restaurantsText == "" {
		restaurantsText = "No restaurants available."
	}

	return fmt.Sprintf(systemPromptTemplate, mealsText, categoriesText, restaurantsText)
}

// BuildMessages keeps the last user/assistant turns with content and
// appends the new user message.
func BuildMessages(history []Message, message string) []Message {
	kept := make([]Message, 0, len(history)+1)
	for _, h := range history {
		if (h.Role != RoleUser && h.Role != RoleAssistant) || strings.TrimSpace(h.Content) == "" {
			continue
		}
		kept = append(kept, h)
	}
	if len(kept) > maxHistory {
		kept = kept[len(kept)-maxHistory:]
	}
	return append(kept, Message{Role: RoleUser, Content: message})
}
