package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ayushlabs/ayush-backend/internal/apierr"
	"github.com/ayushlabs/ayush-backend/internal/clients/gemini"
	"github.com/ayushlabs/ayush-backend/internal/logger"
	"github.com/ayushlabs/ayush-backend/internal/prakriti"
	"github.com/ayushlabs/ayush-backend/internal/repos"
	"github.com/ayushlabs/ayush-backend/internal/types"
)

const recipeHistoryLimit = 20

// recipeSchema constrains the model to the exact recipe document shape so the
// response can be decoded without post-hoc cleanup.
var recipeSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"recipe_name":       {Type: genai.TypeString},
		"ayurvedic_benefit": {Type: genai.TypeString},
		"instructions": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"youtube_query": {Type: genai.TypeString},
		"ojas_impact":   {Type: genai.TypeInteger},
	},
	Required: []string{"recipe_name", "ayurvedic_benefit", "instructions", "youtube_query", "ojas_impact"},
}

type RecipeService interface {
	Generate(ctx context.Context, phone string, ingredients []string) (*types.Recipe, error)
	History(ctx context.Context, phone string) ([]*types.RecipeRecord, error)
}

type recipeService struct {
	db         *gorm.DB
	log        *logger.Logger
	gemini     gemini.Client
	userRepo   repos.UserRepo
	recipeRepo repos.RecipeRecordRepo
}

func NewRecipeService(db *gorm.DB, log *logger.Logger, geminiClient gemini.Client, userRepo repos.UserRepo, recipeRepo repos.RecipeRecordRepo) RecipeService {
	serviceLog := log.With("service", "RecipeService")
	return &recipeService{
		db:         db,
		log:        serviceLog,
		gemini:     geminiClient,
		userRepo:   userRepo,
		recipeRepo: recipeRepo,
	}
}

func (rs *recipeService) Generate(ctx context.Context, phone string, ingredients []string) (*types.Recipe, error) {
	if rs.gemini == nil {
		return nil, fmt.Errorf("%w: recipe generation is not configured", apierr.ErrUnavailable)
	}
	cleaned := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if s := strings.TrimSpace(ing); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%w: at least one ingredient is required", apierr.ErrInvalidInput)
	}

	user, err := fetchUserByPhone(ctx, nil, rs.userRepo, phone)
	if err != nil {
		return nil, err
	}
	dominant := user.Prakriti.Data().Dominant
	if dominant == "" {
		dominant = prakriti.DoshaVata
	}
	agni := latestAgni(user.AssessmentHistory)

	prompt := fmt.Sprintf(
		"You are an expert Ayurvedic chef. Create one recipe for a person with %s prakriti and %s digestive state, using only these ingredients: %s. "+
			"The recipe must pacify %s dosha and be easy to digest. Respond with JSON only.",
		dominant, agni, strings.Join(cleaned, ", "), dominant)

	raw, err := rs.gemini.GenerateJSON(ctx, prompt, recipeSchema)
	if err != nil {
		return nil, err
	}

	recipe, err := decodeRecipe(raw)
	if err != nil {
		rs.log.Warn("Model returned malformed recipe document", "error", err)
		return nil, fmt.Errorf("%w: recipe generation returned malformed output", apierr.ErrUnavailable)
	}

	// Persist off the request path; a failed write never costs the caller
	// the recipe they already have.
	go rs.persist(phone, cleaned, recipe)

	return recipe, nil
}

func (rs *recipeService) History(ctx context.Context, phone string) ([]*types.RecipeRecord, error) {
	return rs.recipeRepo.ListByPhone(ctx, nil, phone, recipeHistoryLimit)
}

func (rs *recipeService) persist(phone string, ingredients []string, recipe *types.Recipe) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	record := &types.RecipeRecord{
		Phone:       phone,
		RecipeName:  recipe.RecipeName,
		Ingredients: datatypes.NewJSONSlice(ingredients),
		FullRecipe:  datatypes.NewJSONType(*recipe),
	}
	if _, err := rs.recipeRepo.Create(ctx, nil, []*types.RecipeRecord{record}); err != nil {
		rs.log.Warn("Failed to persist recipe record", "phone", phone, "error", err)
	}
}

func decodeRecipe(raw map[string]any) (*types.Recipe, error) {
	buf, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var recipe types.Recipe
	if err := json.Unmarshal(buf, &recipe); err != nil {
		return nil, err
	}
	if recipe.RecipeName == "" {
		return nil, fmt.Errorf("missing recipe_name")
	}
	return &recipe, nil
}

// latestAgni returns the digestive state from the most recent assessment that
// recorded one, defaulting to balanced digestion.
func latestAgni(history []types.AssessmentEntry) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Agni != "" && history[i].Agni != "Unknown" {
			return history[i].Agni
		}
	}
	return "Sama Agni"
}
