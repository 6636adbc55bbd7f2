package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ayushlabs/ayush-backend/internal/apierr"
	"github.com/ayushlabs/ayush-backend/internal/clients/gcp"
	"github.com/ayushlabs/ayush-backend/internal/knowledge"
	"github.com/ayushlabs/ayush-backend/internal/logger"
)

type MealItem struct {
	Name   string `json:"name"`
	Dosha  string `json:"dosha"`
	Virya  string `json:"virya"`
	Impact string `json:"impact"`
}

type MealScanResult struct {
	Detected []string   `json:"detected"`
	Items    []MealItem `json:"items"`
}

// MealScanService matches foods recognized in a photo against the Ayurvedic
// food knowledge base.
type MealScanService interface {
	ScanMeal(ctx context.Context, image []byte) (*MealScanResult, error)
}

type mealScanService struct {
	db     *gorm.DB
	log    *logger.Logger
	vision gcp.Vision
	index  map[string]knowledge.FoodInfo
}

func NewMealScanService(db *gorm.DB, log *logger.Logger, vision gcp.Vision, base *knowledge.Base) MealScanService {
	serviceLog := log.With("service", "MealScanService")
	return &mealScanService{
		db:     db,
		log:    serviceLog,
		vision: vision,
		index:  buildFoodIndex(base),
	}
}

// buildFoodIndex maps every food name and alias, lowercased, to its entry so
// vision labels can be matched with a single lookup.
func buildFoodIndex(base *knowledge.Base) map[string]knowledge.FoodInfo {
	index := make(map[string]knowledge.FoodInfo)
	for _, info := range base.Foods {
		index[strings.ToLower(info.Name)] = info
		for _, alias := range info.Aliases {
			index[strings.ToLower(alias)] = info
		}
	}
	return index
}

func (ms *mealScanService) ScanMeal(ctx context.Context, image []byte) (*MealScanResult, error) {
	if ms.vision == nil {
		return nil, fmt.Errorf("%w: meal scanning is not configured", apierr.ErrUnavailable)
	}
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: image payload is empty", apierr.ErrInvalidInput)
	}

	detections, err := ms.vision.DetectFoodLabels(ctx, image)
	if err != nil {
		return nil, err
	}

	result := &MealScanResult{Detected: []string{}, Items: []MealItem{}}
	seen := make(map[string]bool)
	for _, d := range detections {
		result.Detected = append(result.Detected, d.Label)
		info, ok := ms.index[d.Label]
		if !ok || seen[info.Name] {
			continue
		}
		seen[info.Name] = true
		result.Items = append(result.Items, MealItem{
			Name:   info.Name,
			Dosha:  info.Dosha,
			Virya:  info.Virya,
			Impact: info.Note,
		})
	}
	ms.log.Debug("Meal scan matched knowledge base entries", "detected", len(result.Detected), "matched", len(result.Items))
	return result, nil
}
