package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/ayushlabs/ayush-backend/internal/apierr"
	"github.com/ayushlabs/ayush-backend/internal/requestdata"
	"github.com/ayushlabs/ayush-backend/internal/services"
)

type DietHandler struct {
	dietService services.DietService
}

func NewDietHandler(dietService services.DietService) *DietHandler {
	return &DietHandler{dietService: dietService}
}

func (dh *DietHandler) GetDietPlan(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, fmt.Errorf("%w: no request data", apierr.ErrUnauthorized))
		return
	}
	plan, err := dh.dietService.GetDietPlan(c.Request.Context(), rd.Phone)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, plan)
}
