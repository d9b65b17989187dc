package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crewpay/internal/middleware"
	"crewpay/internal/model"
	"crewpay/internal/service"
	"crewpay/pkg/util"
)

const maxTaskLength = 500

// TaskHandler handles work-sheet HTTP requests
type TaskHandler struct {
	tasks *service.TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Create handles POST /work-sheet (Employee)
func (h *TaskHandler) Create(c *gin.Context) {
	var req model.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}
	if req.Task == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Task description is required", ""))
		return
	}
	if len(req.Task) > maxTaskLength {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Task description exceeds maximum length", ""))
		return
	}

	user := middleware.UserFrom(c)
	task, err := h.tasks.Create(c.Request.Context(), user.Email, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to create task", err.Error()))
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Task created", task))
}

// ListAll handles GET /work-sheet (HR)
func (h *TaskHandler) ListAll(c *gin.Context) {
	tasks, err := h.tasks.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to list tasks", err.Error()))
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// ListMine handles GET /work-sheet/me (Employee)
func (h *TaskHandler) ListMine(c *gin.Context) {
	user := middleware.UserFrom(c)
	tasks, err := h.tasks.ListByEmail(c.Request.Context(), user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to list tasks", err.Error()))
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// Update handles PUT /work-sheet/:id (Employee, own entry only)
func (h *TaskHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if !util.IsValidObjectID(id) {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid task ID format", ""))
		return
	}

	var req model.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}

	user := middleware.UserFrom(c)
	matched, err := h.tasks.Update(c.Request.Context(), id, user.Email, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to update task", err.Error()))
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Task updated", gin.H{"matchedCount": matched}))
}

// Delete handles DELETE /work-sheet/:id (Employee, own entry only)
func (h *TaskHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if !util.IsValidObjectID(id) {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid task ID format", ""))
		return
	}

	user := middleware.UserFrom(c)
	deleted, err := h.tasks.Delete(c.Request.Context(), id, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to delete task", err.Error()))
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Task deleted", gin.H{"deletedCount": deleted}))
}
