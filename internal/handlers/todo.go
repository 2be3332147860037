package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Bartuster/todo-backend/internal/auth"
	"github.com/Bartuster/todo-backend/internal/domain"
	"github.com/Bartuster/todo-backend/internal/dto"
	"github.com/Bartuster/todo-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type TodoHandler struct {
	svc    *service.TodoService
	logger zerolog.Logger
}

func NewTodoHandler(svc *service.TodoService, logger zerolog.Logger) *TodoHandler {
	return &TodoHandler{svc: svc, logger: logger}
}

// Create godoc
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        body body dto.CreateTodoRequest true "todo"
// @Success      201 {object} dto.TodoResponse
// @Failure      400 {object} map[string]string
// @Security     BearerAuth
// @Router       /todos [post]
func (h *TodoHandler) Create(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
		return
	}

	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	t, err := h.svc.Create(c.Request.Context(), user.ID, req.Title, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrEmptyTitle) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
			return
		}
		h.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to create todo")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, todoToResponse(t))
}

// List godoc
// @Summary      List the caller's todos
// @Tags         todos
// @Produce      json
// @Success      200 {object} dto.ListTodosResponse
// @Security     BearerAuth
// @Router       /todos [get]
func (h *TodoHandler) List(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
		return
	}

	list, err := h.svc.List(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to list todos")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, todosToResponse(list))
}

// GetByID godoc
// @Summary      Get a todo by id
// @Tags         todos
// @Produce      json
// @Param        id path int true "todo id"
// @Success      200 {object} dto.TodoResponse
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /todos/{id} [get]
func (h *TodoHandler) GetByID(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	t, err := h.svc.GetByID(c.Request.Context(), user.ID, id)
	if err != nil {
		h.respondTodoError(c, user.ID, err)
		return
	}

	c.JSON(http.StatusOK, todoToResponse(t))
}

// Update godoc
// @Summary      Update a todo
// @Description  Partial update: omitted fields keep their stored values.
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        id path int true "todo id"
// @Param        body body dto.UpdateTodoRequest true "fields to change"
// @Success      200 {object} dto.TodoResponse
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /todos/{id} [put]
func (h *TodoHandler) Update(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	t, err := h.svc.Update(c.Request.Context(), user.ID, id, req.Title, req.Description, req.Completed)
	if err != nil {
		if errors.Is(err, service.ErrEmptyTitle) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title must not be empty"})
			return
		}
		h.respondTodoError(c, user.ID, err)
		return
	}

	c.JSON(http.StatusOK, todoToResponse(t))
}

// Delete godoc
// @Summary      Delete a todo
// @Tags         todos
// @Param        id path int true "todo id"
// @Success      204
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /todos/{id} [delete]
func (h *TodoHandler) Delete(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), user.ID, id); err != nil {
		h.respondTodoError(c, user.ID, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TodoHandler) respondTodoError(c *gin.Context, userID int64, err error) {
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
		return
	}
	h.logger.Error().Err(err).Int64("user_id", userID).Msg("todo operation failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// parseID reads the :id path param. A malformed id gets the same 404 as a
// missing todo, to keep the error surface uniform.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
		return 0, false
	}
	return id, true
}

func todoToResponse(t domain.Todo) dto.TodoResponse {
	return dto.TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func todosToResponse(list []domain.Todo) dto.ListTodosResponse {
	items := make([]dto.TodoResponse, 0, len(list))
	for _, t := range list {
		items = append(items, todoToResponse(t))
	}
	return dto.ListTodosResponse{Items: items}
}
