package nutrition

// Nutrient ids in FoodData Central.
const (
	NutrientCalories = 1008
	NutrientProtein  = 1003
	NutrientCarbs    = 1005
	NutrientFat      = 1004
	NutrientSodium   = 1093
)

// Suggestions are returned alongside an empty search.
var Suggestions = []string{
	`Try broader terms: "burger" instead of "chicken burger"`,
	`Use common names: "pizza" instead of "margherita pizza"`,
	"Check spelling",
}

type Facts struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
	Sodium   int `json:"sodium"`
}

type Food struct {
	Name      string  `json:"name"`
	Brand     *string `json:"brand"`
	Nutrition Facts   `json:"nutrition"`
}

type Result struct {
	Query        string `json:"query"`
	TotalFound   int    `json:"totalFound"`
	BestMatch    Food   `json:"bestMatch"`
	Alternatives []Food `json:"alternatives"`
}

// SearchResponse is the subset of the /foods/search payload we read.
type SearchResponse struct {
	Foods     []SearchFood `json:"foods"`
	TotalHits int          `json:"totalHits"`
}

type SearchFood struct {
	FdcID         int              `json:"fdcId"`
	Description   string           `json:"description"`
	BrandOwner    string           `json:"brandOwner"`
	FoodNutrients []SearchNutrient `json:"foodNutrients"`
}

type SearchNutrient struct {
	NutrientID   int     `json:"nutrientId"`
	NutrientName string  `json:"nutrientName"`
	Value        float64 `json:"value"`
	UnitName     string  `json:"unitName"`
}
