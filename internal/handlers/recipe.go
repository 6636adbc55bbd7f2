package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/ayushlabs/ayush-backend/internal/apierr"
	"github.com/ayushlabs/ayush-backend/internal/requestdata"
	"github.com/ayushlabs/ayush-backend/internal/services"
)

type RecipeHandler struct {
	recipeService services.RecipeService
}

func NewRecipeHandler(recipeService services.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

func (rh *RecipeHandler) Generate(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, fmt.Errorf("%w: no request data", apierr.ErrUnauthorized))
		return
	}
	var req struct {
		Ingredients []string `json:"ingredients"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, fmt.Errorf("%w: invalid request body", apierr.ErrInvalidInput))
		return
	}
	recipe, err := rh.recipeService.Generate(c.Request.Context(), rd.Phone, req.Ingredients)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, recipe)
}

func (rh *RecipeHandler) History(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, fmt.Errorf("%w: no request data", apierr.ErrUnauthorized))
		return
	}
	records, err := rh.recipeService.History(c.Request.Context(), rd.Phone)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"recipes": records})
}
