package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/ayushlabs/ayush-backend/internal/apierr"
	"github.com/ayushlabs/ayush-backend/internal/services"
)

type ChatHandler struct {
	assessmentService services.AssessmentService
}

func NewChatHandler(assessmentService services.AssessmentService) *ChatHandler {
	return &ChatHandler{assessmentService: assessmentService}
}

// Query advances the assessment dialogue by one turn. The route is public so
// the dialogue works pre-registration; phone is optional and only used to
// record completed traversals.
func (ch *ChatHandler) Query(c *gin.Context) {
	var req struct {
		NodeID string `json:"node_id"`
		Choice string `json:"choice"`
		Lang   string `json:"lang"`
		Phone  string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, fmt.Errorf("%w: invalid request body", apierr.ErrInvalidInput))
		return
	}
	out, err := ch.assessmentService.Step(c.Request.Context(), services.StepInput{
		NodeID: req.NodeID,
		Choice: req.Choice,
		Lang:   req.Lang,
		Phone:  req.Phone,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, out)
}
