package handlers

import (
	"fmt"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/ayushlabs/ayush-backend/internal/apierr"
	"github.com/ayushlabs/ayush-backend/internal/services"
)

// maxMealImageBytes bounds the upload so a single request cannot hold an
// arbitrary amount of memory.
const maxMealImageBytes = 8 << 20

type MealHandler struct {
	mealScanService services.MealScanService
}

func NewMealHandler(mealScanService services.MealScanService) *MealHandler {
	return &MealHandler{mealScanService: mealScanService}
}

func (mh *MealHandler) Scan(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, fmt.Errorf("%w: image file is required", apierr.ErrInvalidInput))
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxMealImageBytes))
	if err != nil {
		RespondError(c, fmt.Errorf("%w: failed to read image", apierr.ErrInvalidInput))
		return
	}
	result, err := mh.mealScanService.ScanMeal(c.Request.Context(), image)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}
