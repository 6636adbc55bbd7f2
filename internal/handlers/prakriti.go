package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayushlabs/ayush-backend/internal/apierr"
	"github.com/ayushlabs/ayush-backend/internal/requestdata"
	"github.com/ayushlabs/ayush-backend/internal/services"
)

type PrakritiHandler struct {
	prakritiService services.PrakritiService
}

func NewPrakritiHandler(prakritiService services.PrakritiService) *PrakritiHandler {
	return &PrakritiHandler{prakritiService: prakritiService}
}

func (ph *PrakritiHandler) Classify(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, fmt.Errorf("%w: no request data", apierr.ErrUnauthorized))
		return
	}
	var req struct {
		Answers        []int `json:"answers"`
		ReportUploaded bool  `json:"report_uploaded"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, fmt.Errorf("%w: invalid request body", apierr.ErrInvalidInput))
		return
	}
	profile, err := ph.prakritiService.Classify(c.Request.Context(), rd.Phone, req.Answers, req.ReportUploaded)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prakriti": profile})
}
