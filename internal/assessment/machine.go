package assessment

import (
	"fmt"
	"strings"
	"time"

	"github.com/ayushlabs/ayush-backend/internal/apierr"
	"github.com/ayushlabs/ayush-backend/internal/knowledge"
	"github.com/ayushlabs/ayush-backend/internal/types"
)

const (
	// TerminalMarker flags a node id as a result regardless of the question
	// pool; ReservedTerminal is the one terminal id without the marker.
	TerminalMarker   = "RESULT"
	ReservedTerminal = "REVIEW_REQUIRED"

	// DefaultMaxHops bounds alias resolution. A graph needing more hops than
	// this to reach a real node is considered defective.
	DefaultMaxHops = 8

	TypeQuestion = "question"
	TypeResult   = "result"
)

type OptionView struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Output is either a rendered question (Type "question") or a completed
// assessment (Type "result", with Entry populated).
type Output struct {
	Type     string                 `json:"type"`
	NodeID   string                 `json:"node_id,omitempty"`
	Question string                 `json:"question,omitempty"`
	Options  []OptionView           `json:"options,omitempty"`
	Entry    *types.AssessmentEntry `json:"data,omitempty"`
}

// Machine walks the assessment graph. It keeps no state between calls; the
// client holds the cursor by echoing back node ids.
type Machine struct {
	graph   *knowledge.Graph
	maxHops int
	now     func() time.Time
}

func NewMachine(graph *knowledge.Graph) *Machine {
	return &Machine{graph: graph, maxHops: DefaultMaxHops, now: time.Now}
}

// IsTerminal reports whether the node id always resolves as a result node.
func IsTerminal(nodeID string) bool {
	return strings.Contains(nodeID, TerminalMarker) || nodeID == ReservedTerminal
}

// Step advances the dialogue a single turn. An unmatched choice stays on the
// current node (stale client option lists are tolerated); an unknown entry id
// is NotFound; an alias chain that never lands on a real node is a
// configuration defect in the graph data.
func (m *Machine) Step(nodeID, choiceValue, lang string) (*Output, error) {
	id := nodeID
	choicePending := choiceValue != ""

	for hops := 0; hops <= m.maxHops; hops++ {
		if IsTerminal(id) {
			res, ok := m.graph.Results[id]
			if !ok {
				return nil, fmt.Errorf("%w: result node %q", apierr.ErrNotFound, id)
			}
			return m.renderResult(id, res, lang), nil
		}

		if q, ok := m.graph.Questions[id]; ok {
			if choicePending {
				choicePending = false
				if next, matched := matchOption(q, choiceValue); matched {
					id = next
					continue
				}
				// no matching option: stay on the current node
			}
			return m.renderQuestion(id, q, lang), nil
		}

		if next, ok := m.graph.Aliases[id]; ok {
			id = next
			continue
		}

		if hops == 0 {
			return nil, fmt.Errorf("%w: node %q", apierr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: node %q referenced from %q resolves to neither question nor result", apierr.ErrConfigurationDefect, id, nodeID)
	}

	return nil, fmt.Errorf("%w: alias chain starting at %q exceeds %d hops", apierr.ErrConfigurationDefect, nodeID, m.maxHops)
}

func matchOption(q *knowledge.QuestionNode, choiceValue string) (string, bool) {
	for _, opt := range q.Options {
		if opt.Value == choiceValue {
			return opt.Next, true
		}
	}
	return "", false
}

func (m *Machine) renderQuestion(id string, q *knowledge.QuestionNode, lang string) *Output {
	options := make([]OptionView, 0, len(q.Options))
	for _, opt := range q.Options {
		options = append(options, OptionView{
			Value: opt.Value,
			Label: localized(lang, opt.LabelEN, opt.LabelKN),
		})
	}
	return &Output{
		Type:     TypeQuestion,
		NodeID:   id,
		Question: localized(lang, q.QuestionEN, q.QuestionKN),
		Options:  options,
	}
}

func (m *Machine) renderResult(id string, res *knowledge.ResultNode, lang string) *Output {
	message := localized(lang, res.MessageEN, res.MessageKN)
	if message == "" {
		message = "Assessment complete."
	}
	entry := &types.AssessmentEntry{
		Timestamp:   m.now().Format(time.RFC3339),
		Prakriti:    orUnknown(res.Prakriti),
		Agni:        orUnknown(res.Agni),
		Message:     message,
		NodeReached: id,
	}
	return &Output{Type: TypeResult, NodeID: id, Entry: entry}
}

// localized picks the requested language's string, falling back to English
// per field when it is absent.
func localized(lang, en, kn string) string {
	if lang == "kn" && kn != "" {
		return kn
	}
	return en
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
