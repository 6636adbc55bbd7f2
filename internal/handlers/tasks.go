package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayushlabs/ayush-backend/internal/apierr"
	"github.com/ayushlabs/ayush-backend/internal/requestdata"
	"github.com/ayushlabs/ayush-backend/internal/services"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (th *TaskHandler) Toggle(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, fmt.Errorf("%w: no request data", apierr.ErrUnauthorized))
		return
	}
	var req struct {
		TaskID string `json:"task_id"`
		IsDone bool   `json:"is_done"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, fmt.Errorf("%w: invalid request body", apierr.ErrInvalidInput))
		return
	}
	if req.TaskID == "" {
		RespondError(c, fmt.Errorf("%w: task_id is required", apierr.ErrInvalidInput))
		return
	}
	result, err := th.taskService.ToggleTask(c.Request.Context(), rd.Phone, req.TaskID, req.IsDone)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}

func (th *TaskHandler) ResetWeek(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, fmt.Errorf("%w: no request data", apierr.ErrUnauthorized))
		return
	}
	if err := th.taskService.ResetWeek(c.Request.Context(), rd.Phone); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "weekly plan reset"})
}

func (th *TaskHandler) WeeklySummary(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, fmt.Errorf("%w: no request data", apierr.ErrUnauthorized))
		return
	}
	summary, err := th.taskService.WeeklySummary(c.Request.Context(), rd.Phone)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, summary)
}
