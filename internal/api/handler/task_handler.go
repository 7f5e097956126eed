package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/api/middleware"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type createTaskRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	AssignedTo  string    `json:"assigned_to" validate:"required"`
	ProjectID   string    `json:"project_id"`
	DueDate     time.Time `json:"due_date" validate:"required"`
}

type addCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// Create persists a new task and notifies its assignee.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  domain.Task
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		ProjectID:   req.ProjectID,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

// Get returns a single task by ID.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  domain.Task
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	task, err := h.taskService.GetTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

// AddComment attaches a comment to a task and notifies the assignee.
//
// @Summary      Comment on a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Task ID"
// @Param        body  body      addCommentRequest  true  "Comment text"
// @Success      201   {object}  domain.Comment
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /tasks/{id}/comments [post]
func (h *TaskHandler) AddComment(c echo.Context) error {
	var req addCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	principal := middleware.Principal(c)
	comment, err := h.taskService.AddComment(c.Request().Context(), ports.AddCommentInput{
		TaskID: c.Param("id"),
		UserID: principal.UserID,
		Text:   req.Text,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, comment)
}
