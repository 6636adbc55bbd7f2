package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Recipe is the structured output of the recipe generation service.
type Recipe struct {
	RecipeName       string   `json:"recipe_name"`
	AyurvedicBenefit string   `json:"ayurvedic_benefit"`
	Instructions     []string `json:"instructions"`
	YoutubeQuery     string   `json:"youtube_query"`
	OjasImpact       int      `json:"ojas_impact"`
}

// RecipeRecord is one entry in a user's personal recipe timeline.
type RecipeRecord struct {
	ID          uuid.UUID                   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Phone       string                      `gorm:"index;not null;column:phone" json:"phone"`
	RecipeName  string                      `gorm:"column:recipe_name" json:"recipe_name"`
	Ingredients datatypes.JSONSlice[string] `gorm:"column:ingredients" json:"ingredients"`
	FullRecipe  datatypes.JSONType[Recipe]  `gorm:"column:full_recipe" json:"full_recipe"`
	CreatedAt   time.Time                   `gorm:"not null;default:now();index" json:"created_at"`
}

func (RecipeRecord) TableName() string {
	return "recipe_record"
}
