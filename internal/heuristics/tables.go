package heuristics

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category names form a closed set; categorization never produces a value
// outside it.
const (
	CategoryProtein    = "protein"
	CategoryVegetables = "vegetables"
	CategoryFruits     = "fruits"
	CategoryDairy      = "dairy"
	CategoryGrains     = "grains"
	CategoryOils       = "oils"
	CategorySpices     = "spices"
	CategoryHerbs      = "herbs"
	CategoryPantry     = "pantry"
	CategoryOther      = "other"
)

var knownCategories = map[string]bool{
	CategoryProtein:    true,
	CategoryVegetables: true,
	CategoryFruits:     true,
	CategoryDairy:      true,
	CategoryGrains:     true,
	CategoryOils:       true,
	CategorySpices:     true,
	CategoryHerbs:      true,
	CategoryPantry:     true,
	CategoryOther:      true,
}

// CategoryRule maps a category name to the keywords that select it. Rules
// are evaluated in order; the first keyword hit wins.
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// PriceBucket assigns an estimated price to names containing one of its
// keywords, for item lines whose real price could not be parsed.
type PriceBucket struct {
	Keywords []string `yaml:"keywords"`
	Price    float64  `yaml:"price"`
}

// Tables holds the extraction engine's heuristic rule data. Values are
// treated as immutable once constructed; the engine never modifies them.
type Tables struct {
	Categories        []CategoryRule `yaml:"categories"`
	PriceBuckets      []PriceBucket  `yaml:"price_buckets"`
	DefaultPrice      float64        `yaml:"default_price"`
	Retailers         []string       `yaml:"retailers"`
	SectionHeaders    []string       `yaml:"section_headers"`
	EndMarkers        []string       `yaml:"end_markers"`
	SkipWords         []string       `yaml:"skip_words"`
	FallbackThreshold int            `yaml:"fallback_threshold"`
	FallbackCap       int            `yaml:"fallback_cap"`
}

// Default returns the built-in rule tables.
func Default() Tables {
	return Tables{
		Categories: []CategoryRule{
			{Name: CategoryProtein, Keywords: []string{
				"chicken", "beef", "pork", "steak", "turkey", "ham", "bacon",
				"sausage", "salmon", "tuna", "shrimp", "fish", "egg", "tofu",
			}},
			{Name: CategoryVegetables, Keywords: []string{
				"lettuce", "tomato", "onion", "carrot", "broccoli", "spinach",
				"pepper", "cucumber", "celery", "kale", "potato", "cabbage",
				"zucchini", "mushroom", "squash", "cauliflower",
			}},
			{Name: CategoryFruits, Keywords: []string{
				"apple", "banana", "orange", "grape", "berr", "strawberr",
				"blueberr", "lemon", "lime", "peach", "pear", "mango",
				"avocado", "melon", "pineapple", "cherr",
			}},
			{Name: CategoryDairy, Keywords: []string{
				"milk", "cheese", "yogurt", "butter", "cream", "cheddar",
				"mozzarella", "parmesan",
			}},
			{Name: CategoryGrains, Keywords: []string{
				"bread", "rice", "pasta", "cereal", "oat", "flour", "tortilla",
				"bagel", "quinoa", "noodle",
			}},
			{Name: CategoryOils, Keywords: []string{
				"oil", "ghee", "shortening",
			}},
			{Name: CategorySpices, Keywords: []string{
				"salt", "cumin", "paprika", "cinnamon", "turmeric", "chili powder",
				"curry", "spice", "seasoning",
			}},
			{Name: CategoryHerbs, Keywords: []string{
				"basil", "cilantro", "parsley", "mint", "rosemary", "thyme",
				"oregano", "dill", "sage", "herb",
			}},
			{Name: CategoryPantry, Keywords: []string{
				"sugar", "honey", "sauce", "soup", "bean", "broth", "stock",
				"peanut butter", "jam", "jelly", "ketchup", "mustard", "mayo",
				"vinegar", "snack", "chip", "cracker", "coffee", "tea", "cookie",
				"granola", "syrup", "salsa",
			}},
		},
		PriceBuckets: []PriceBucket{
			{Keywords: []string{"organic"}, Price: 8.99},
			{Keywords: []string{"meat", "chicken", "beef", "pork", "fish", "seafood"}, Price: 12.99},
			{Keywords: []string{"produce", "vegetable", "fruit"}, Price: 4.99},
		},
		DefaultPrice: 4.99,
		Retailers: []string{
			"WHOLE FOODS", "TRADER JOE", "SAFEWAY", "KROGER", "COSTCO",
			"WALMART", "TARGET", "ALDI", "PUBLIX", "WEGMANS", "SPROUTS",
			"ALBERTSONS", "FOOD LION", "H-E-B",
		},
		SectionHeaders: []string{
			"PRODUCE", "MEAT", "SEAFOOD", "DAIRY", "BAKERY", "DELI",
			"FROZEN", "GROCERY", "BULK", "BEVERAGES", "SNACKS", "HOUSEHOLD",
			"PANTRY",
		},
		EndMarkers: []string{
			"subtotal", "sub total", "total", "tax", "balance", "amount due",
			"change due", "change", "cash", "credit", "debit", "visa",
			"mastercard", "amex", "discover", "tender", "payment",
			"thank you", "thanks for shopping", "items sold",
		},
		SkipWords: []string{
			"cashier", "register", "clerk", "lane", "trans", "terminal",
			"member", "rewards", "coupon", "savings", "save today",
			"approval", "auth code", "ref #", "welcome to", "www", ".com",
			"receipt", "store #", "tel", "phone",
		},
		FallbackThreshold: 10,
		FallbackCap:       20,
	}
}

// Load reads a YAML overlay from path on top of the defaults. Fields absent
// from the file keep their default values.
func Load(path string) (Tables, error) {
	t := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("reading heuristics file: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tables{}, fmt.Errorf("parsing heuristics file: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tables{}, fmt.Errorf("validating heuristics file: %w", err)
	}
	return t, nil
}

// Validate checks that the tables are internally consistent.
func (t Tables) Validate() error {
	for _, rule := range t.Categories {
		if !knownCategories[rule.Name] {
			return fmt.Errorf("unknown category %q", rule.Name)
		}
		if len(rule.Keywords) == 0 {
			return fmt.Errorf("category %q has no keywords", rule.Name)
		}
	}
	for _, bucket := range t.PriceBuckets {
		if bucket.Price <= 0 {
			return fmt.Errorf("price bucket %v has non-positive price", bucket.Keywords)
		}
	}
	if t.DefaultPrice <= 0 {
		return fmt.Errorf("default price must be positive, got %v", t.DefaultPrice)
	}
	if t.FallbackThreshold < 0 {
		return fmt.Errorf("fallback threshold must not be negative, got %d", t.FallbackThreshold)
	}
	if t.FallbackCap <= 0 {
		return fmt.Errorf("fallback cap must be positive, got %d", t.FallbackCap)
	}
	return nil
}

// CategoryFor returns the category for a cleaned, lowercased item name.
// Rules are checked in table order; no keyword hit yields "other".
func (t Tables) CategoryFor(name string) string {
	for _, rule := range t.Categories {
		for _, kw := range rule.Keywords {
			if strings.Contains(name, kw) {
				return rule.Name
			}
		}
	}
	return CategoryOther
}

// EstimatePrice returns the bucket price for the first keyword contained in
// the lowercased name, or the default price.
func (t Tables) EstimatePrice(name string) float64 {
	for _, bucket := range t.PriceBuckets {
		for _, kw := range bucket.Keywords {
			if strings.Contains(name, kw) {
				return bucket.Price
			}
		}
	}
	return t.DefaultPrice
}
