package chat

// Message is one turn of the conversation, in Messages API shape.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Catalogue is the menu snapshot embedded in the system prompt.
type Catalogue struct {
	Meals      []CatalogueMeal     `json:"meals"`
	Categories []string            `json:"categories"`
	Providers  []CatalogueProvider `json:"providers"`
}

type CatalogueMeal struct {
	Name           string   `json:"name"`
	Description    *string  `json:"description"`
	Price          float64  `json:"price"`
	DietaryInfo    []string `json:"dietaryInfo"`
	PrepTime       *int     `json:"prepTime"`
	CategoryName   *string  `json:"categoryName"`
	RestaurantName *string  `json:"restaurantName"`
}

type CatalogueProvider struct {
	RestaurantName string  `json:"restaurantName"`
	CuisineType    *string `json:"cuisineType"`
	Description    *string `json:"description"`
}
