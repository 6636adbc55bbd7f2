package knowledge

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/ayushlabs/ayush-backend/internal/apierr"
	"github.com/ayushlabs/ayush-backend/internal/logger"
)

// Option is one selectable answer on a question node. Value is what the
// client echoes back; Next is the node id the choice routes to.
type Option struct {
	Value   string `json:"value"`
	LabelEN string `json:"label_en"`
	LabelKN string `json:"label_kn"`
	Next    string `json:"next"`
}

type QuestionNode struct {
	QuestionEN string   `json:"question_en"`
	QuestionKN string   `json:"question_kn"`
	Options    []Option `json:"options"`
}

type ResultNode struct {
	MessageEN string `json:"message_en"`
	MessageKN string `json:"message_kn"`
	Prakriti  string `json:"prakriti"`
	Agni      string `json:"agni"`
}

// Graph is the merged, read-only assessment graph. Question ids are globally
// unique across all categories; Aliases are routing-only ids that resolve to
// another node.
type Graph struct {
	Questions map[string]*QuestionNode
	Results   map[string]*ResultNode
	Aliases   map[string]string
}

// FoodInfo is one row of the food reference table. Aliases are the
// lower-cased labels the vision service may report for it.
type FoodInfo struct {
	Name    string   `json:"name"`
	Dosha   string   `json:"dosha"`
	Virya   string   `json:"virya"`
	Note    string   `json:"note"`
	Aliases []string `json:"aliases"`
}

// Base holds everything loaded from the knowledge files at startup. It is
// never mutated after Load returns.
type Base struct {
	Graph *Graph
	Foods map[string]FoodInfo
}

type qnaFile struct {
	Categories map[string]struct {
		Questions map[string]*QuestionNode `json:"questions"`
	} `json:"categories"`
	Aliases map[string]string      `json:"aliases"`
	Results map[string]*ResultNode `json:"results"`
}

type foodFile struct {
	FoodWisdom map[string]FoodInfo `json:"food_wisdom"`
}

// Load reads the QnA graph and the food reference table. Both files are
// required; a duplicate question id across categories is a configuration
// defect, not a merge.
func Load(log *logger.Logger, qnaPath, foodPath string) (*Base, error) {
	loadLog := log.With("service", "KnowledgeBase")

	var graph *Graph
	var foods map[string]FoodInfo

	var g errgroup.Group
	g.Go(func() error {
		var err error
		graph, err = loadGraph(qnaPath)
		return err
	})
	g.Go(func() error {
		var err error
		foods, err = loadFoods(foodPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	loadLog.Info("Knowledge base loaded",
		"questions", len(graph.Questions),
		"results", len(graph.Results),
		"aliases", len(graph.Aliases),
		"foods", len(foods))
	return &Base{Graph: graph, Foods: foods}, nil
}

func loadGraph(path string) (*Graph, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read qna file: %w", err)
	}
	var f qnaFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse qna file: %w", err)
	}

	merged := make(map[string]*QuestionNode)
	for category, c := range f.Categories {
		for id, q := range c.Questions {
			if _, dup := merged[id]; dup {
				return nil, fmt.Errorf("%w: question id %q defined in more than one category (%s)", apierr.ErrConfigurationDefect, id, category)
			}
			merged[id] = q
		}
	}

	aliases := f.Aliases
	if aliases == nil {
		aliases = map[string]string{}
	}
	results := f.Results
	if results == nil {
		results = map[string]*ResultNode{}
	}
	return &Graph{Questions: merged, Results: results, Aliases: aliases}, nil
}

func loadFoods(path string) (map[string]FoodInfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read food file: %w", err)
	}
	var f foodFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse food file: %w", err)
	}
	if f.FoodWisdom == nil {
		f.FoodWisdom = map[string]FoodInfo{}
	}
	return f.FoodWisdom, nil
}
