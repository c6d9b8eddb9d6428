package handler

import (
	"github.com/SumanthSV/AI-Todo-summarizer/dto"
	"github.com/SumanthSV/AI-Todo-summarizer/usecase"
	"github.com/SumanthSV/AI-Todo-summarizer/utils"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
)

type TodoHandler struct {
	service *usecase.TodoService
	logger  hclog.Logger
}

func NewTodoHandler(service *usecase.TodoService, logger hclog.Logger) *TodoHandler {
	return &TodoHandler{service: service, logger: logger.Named("todos")}
}

func (h *TodoHandler) ListTodos(c *gin.Context) {
	todos, err := h.service.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch todos")
		return
	}
	utils.Success(c, dto.TodosResponse{Todos: todos})
}

func (h *TodoHandler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch todo stats")
		return
	}
	utils.Success(c, stats)
}

func (h *TodoHandler) CreateTodo(c *gin.Context) {
	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	todo, err := h.service.Create(c.Request.Context(), currentUserID(c), usecase.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondError(c, h.logger, err, "Failed to create todo")
		return
	}

	utils.Created(c, dto.CreateTodoResponse{ID: todo.TodoID, Todo: todo})
}

func (h *TodoHandler) ToggleTodo(c *gin.Context) {
	todoID := c.Param("id")
	if err := h.service.Toggle(c.Request.Context(), currentUserID(c), todoID); err != nil {
		respondError(c, h.logger, err, "Failed to toggle todo")
		return
	}
	utils.Success(c, gin.H{"id": todoID})
}

func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	todoID := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), currentUserID(c), todoID); err != nil {
		respondError(c, h.logger, err, "Failed to delete todo")
		return
	}
	utils.Success(c, gin.H{"id": todoID})
}
