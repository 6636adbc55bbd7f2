package gcp

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	vision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"github.com/ayushlabs/ayush-backend/internal/logger"
)

// Vision is the image-classification collaborator used by meal scanning.
type Vision interface {
	DetectFoodLabels(ctx context.Context, img []byte) ([]FoodDetection, error)
	Close() error
}

// FoodDetection is one label the vision model attached to the image,
// lower-cased for lookup against the food reference table.
type FoodDetection struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

type visionService struct {
	log          *logger.Logger
	visionClient *vision.ImageAnnotatorClient

	minConfidence float64
	maxResults    int32
}

func NewVision(log *logger.Logger) (Vision, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	slog := log.With("service", "gcp.Vision")

	ctx := context.Background()
	opts := ClientOptionsFromEnv()

	vClient, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("vision client: %w", err)
	}

	return &visionService{
		log:           slog,
		visionClient:  vClient,
		minConfidence: 0.5,
		maxResults:    15,
	}, nil
}

func (s *visionService) Close() error {
	if s == nil {
		return nil
	}
	if s.visionClient != nil {
		_ = s.visionClient.Close()
	}
	return nil
}

func (s *visionService) DetectFoodLabels(ctx context.Context, img []byte) ([]FoodDetection, error) {
	if len(img) == 0 {
		return []FoodDetection{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req := &visionpb.AnnotateImageRequest{
		Image: &visionpb.Image{Content: img},
		Features: []*visionpb.Feature{
			{Type: visionpb.Feature_LABEL_DETECTION, MaxResults: s.maxResults},
			{Type: visionpb.Feature_OBJECT_LOCALIZATION, MaxResults: s.maxResults},
		},
	}

	br := &visionpb.BatchAnnotateImagesRequest{Requests: []*visionpb.AnnotateImageRequest{req}}
	resp, err := s.visionClient.BatchAnnotateImages(ctx, br)
	if err != nil {
		return nil, fmt.Errorf("vision BatchAnnotateImages: %w", err)
	}
	if resp == nil || len(resp.Responses) == 0 || resp.Responses[0] == nil {
		return []FoodDetection{}, nil
	}

	r0 := resp.Responses[0]
	if r0.Error != nil && r0.Error.Message != "" {
		return nil, fmt.Errorf("vision annotate error: %s", r0.Error.Message)
	}

	seen := make(map[string]float64)
	for _, ann := range r0.LabelAnnotations {
		if ann == nil {
			continue
		}
		record(seen, ann.Description, float64(ann.Score), s.minConfidence)
	}
	for _, obj := range r0.LocalizedObjectAnnotations {
		if obj == nil {
			continue
		}
		record(seen, obj.Name, float64(obj.Score), s.minConfidence)
	}

	out := make([]FoodDetection, 0, len(seen))
	for label, score := range seen {
		out = append(out, FoodDetection{Label: label, Confidence: score})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	return out, nil
}

func record(seen map[string]float64, label string, score, min float64) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" || score < min {
		return
	}
	if prev, ok := seen[label]; !ok || score > prev {
		seen[label] = score
	}
}
