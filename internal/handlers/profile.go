package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/ayushlabs/ayush-backend/internal/apierr"
	"github.com/ayushlabs/ayush-backend/internal/requestdata"
	"github.com/ayushlabs/ayush-backend/internal/services"
)

type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (ph *ProfileHandler) GetProfile(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, fmt.Errorf("%w: no request data", apierr.ErrUnauthorized))
		return
	}
	view, err := ph.profileService.GetProfile(c.Request.Context(), rd.Phone)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, view)
}
