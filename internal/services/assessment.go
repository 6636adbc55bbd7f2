package services

import (
	"context"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ayushlabs/ayush-backend/internal/assessment"
	"github.com/ayushlabs/ayush-backend/internal/logger"
	"github.com/ayushlabs/ayush-backend/internal/normalization"
	"github.com/ayushlabs/ayush-backend/internal/repos"
	"github.com/ayushlabs/ayush-backend/internal/types"
)

// DefaultEntryNode is where a dialogue starts when the client supplies no
// cursor.
const DefaultEntryNode = "AGNI_Q1"

type StepInput struct {
	NodeID string
	Choice string
	Lang   string
	Phone  string
}

// AssessmentService drives the dialogue machine and persists completed
// traversals to the caller's assessment history.
type AssessmentService interface {
	Step(ctx context.Context, in StepInput) (*assessment.Output, error)
}

type assessmentService struct {
	db       *gorm.DB
	log      *logger.Logger
	machine  *assessment.Machine
	userRepo repos.UserRepo
	locks    *PhoneLocks
}

func NewAssessmentService(db *gorm.DB, log *logger.Logger, machine *assessment.Machine, userRepo repos.UserRepo, locks *PhoneLocks) AssessmentService {
	serviceLog := log.With("service", "AssessmentService")
	return &assessmentService{
		db:       db,
		log:      serviceLog,
		machine:  machine,
		userRepo: userRepo,
		locks:    locks,
	}
}

func (as *assessmentService) Step(ctx context.Context, in StepInput) (*assessment.Output, error) {
	nodeID := in.NodeID
	if nodeID == "" {
		nodeID = DefaultEntryNode
	}
	lang := in.Lang
	if lang == "" {
		lang = "en"
	}

	out, err := as.machine.Step(nodeID, in.Choice, lang)
	if err != nil {
		return nil, err
	}

	// History append is the only side effect of a dialogue turn, and only
	// happens on a terminal node for an identified caller.
	if out.Type == assessment.TypeResult && in.Phone != "" {
		phone := normalization.ParsePhone(in.Phone)
		if err := as.appendHistory(ctx, phone, out.Entry); err != nil {
			as.log.Warn("Failed to append assessment history", "phone", phone, "error", err)
		}
	}
	return out, nil
}

// appendHistory is a read-modify-write on the user document, so it runs
// under the per-user lock like every other compound mutation; two terminal
// steps for the same phone can never drop each other's entry.
func (as *assessmentService) appendHistory(ctx context.Context, phone string, entry *types.AssessmentEntry) error {
	unlock := as.locks.Lock(phone)
	defer unlock()

	user, err := fetchUserByPhone(ctx, nil, as.userRepo, phone)
	if err != nil {
		return err
	}
	history := append([]types.AssessmentEntry(user.AssessmentHistory), *entry)
	rows, err := as.userRepo.UpdateByPhone(ctx, nil, phone, map[string]any{
		"assessment_history": datatypes.NewJSONSlice(history),
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("no user row matched phone %s", phone)
	}
	return nil
}
