package api

import "encoding/json"

// RecipeCard describes a recipe in list-friendly form. The domain payload is
// carried opaquely; Larder never interprets nutrition or ingredient data.
type RecipeCard struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Cuisine        string          `json:"cuisine"`
	PrepTimeMin    int             `json:"prep_time_min"`
	CookTimeMin    int             `json:"cook_time_min"`
	TotalTimeMin   int             `json:"total_time_min"`
	Difficulty     string          `json:"difficulty"`
	Tags           []string        `json:"tags"`
	FlavorProfile  []string        `json:"flavor_profile"`
	DietaryTags    []string        `json:"dietary_tags"`
	HealthBenefits []string        `json:"health_benefits"`
	NutritionInfo  json.RawMessage `json:"nutrition_info"`
	Servings       int             `json:"servings"`
}

// SavedListResponse mirrors GET /recipes/saved/list. SavedIDs is the
// membership set; Items carries the full cards in most-recently-saved order.
type SavedListResponse struct {
	Items    []RecipeCard `json:"items"`
	SavedIDs []string     `json:"saved_ids"`
}

// SaveResponse mirrors the save/unsave mutation endpoints.
type SaveResponse struct {
	Status   string `json:"status"`
	RecipeID string `json:"recipe_id,omitempty"`
}

// NewRecipe is the payload for creating a recipe server-side. Fields beyond
// the title are optional; the server fills defaults.
type NewRecipe struct {
	Title          string            `json:"title"`
	Description    string            `json:"description,omitempty"`
	Ingredients    []json.RawMessage `json:"ingredients,omitempty"`
	Steps          []string          `json:"steps,omitempty"`
	PrepTimeMin    int               `json:"prep_time_min,omitempty"`
	CookTimeMin    int               `json:"cook_time_min,omitempty"`
	Servings       int               `json:"servings,omitempty"`
	Difficulty     string            `json:"difficulty,omitempty"`
	Tags           []string          `json:"tags,omitempty"`
	Cuisine        string            `json:"cuisine,omitempty"`
	NutritionInfo  json.RawMessage   `json:"nutrition_info,omitempty"`
	FlavorProfile  []string          `json:"flavor_profile,omitempty"`
	DietaryTags    []string          `json:"dietary_tags,omitempty"`
	HealthBenefits []string          `json:"health_benefits,omitempty"`
}

// Profile mirrors GET /auth/me. Fetching the profile also advances the
// server-side day streak, which is why it doubles as the streak-sync call.
type Profile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	XPPoints      int    `json:"xp_points"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
}

// XPGainResponse mirrors POST /gamification/xp.
type XPGainResponse struct {
	XPGained int    `json:"xp_gained"`
	TotalXP  int    `json:"total_xp"`
	Reason   string `json:"reason"`
	NewLevel *int   `json:"new_level"`
}

// TokenResponse mirrors the auth endpoints.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
