package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SumanthSV/AI-Todo-summarizer/middleware"
	"github.com/SumanthSV/AI-Todo-summarizer/repository"
	"github.com/SumanthSV/AI-Todo-summarizer/services"
	"github.com/SumanthSV/AI-Todo-summarizer/testutils"
	"github.com/SumanthSV/AI-Todo-summarizer/usecase"
	"github.com/SumanthSV/AI-Todo-summarizer/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.InitValidator()
}

// envelope mirrors utils.Response with a typed payload.
type envelope[T any] struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Data    T      `json:"data"`
}

type testApp struct {
	router    *gin.Engine
	repos     *repository.Repos
	broker    *services.MemoryBroker
	llm       *testutils.MockCompleter
	todos     *usecase.TodoService
	summaries *usecase.SummaryService
	users     *usecase.UserService
}

// asUser stands in for AuthMiddleware: the caller is whoever X-Test-User names.
func asUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set(middleware.ContextUserID, id)
		}
		c.Next()
	}
}

func setupHandlerTest(t *testing.T) *testApp {
	t.Helper()

	logger := testutils.Logger()
	repos := testutils.SetupSQLite(t)
	broker := services.NewMemoryBroker()
	llm := &testutils.MockCompleter{}
	tokens := services.NewTokenService("test-secret", time.Hour)

	app := &testApp{
		repos:     repos,
		broker:    broker,
		llm:       llm,
		todos:     usecase.NewTodoService(repos.Todos, broker, logger),
		summaries: usecase.NewSummaryService(repos.Todos, repos.Summaries, llm, broker, logger, usecase.SummaryConfig{Timeout: 5 * time.Second}),
		users:     usecase.NewUserService(repos.Users, repos.Sessions, tokens, nil, time.Hour, logger),
	}

	todoHandler := NewTodoHandler(app.todos, logger)
	summaryHandler := NewSummaryHandler(app.summaries, logger)
	authHandler := NewAuthHandler(app.users, logger)
	health := NewHealthHandler(repos, logger)

	r := gin.New()
	r.GET("/health", health.Health)
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)
	r.POST("/auth/anonymous", authHandler.Anonymous)

	api := r.Group("", asUser())
	api.GET("/user/me", authHandler.Me)
	api.GET("/sessions", authHandler.Sessions)
	api.GET("/todos", todoHandler.ListTodos)
	api.GET("/todos/stats", todoHandler.GetStats)
	api.POST("/todos", todoHandler.CreateTodo)
	api.POST("/todos/:id/toggle", todoHandler.ToggleTodo)
	api.DELETE("/todos/:id", todoHandler.DeleteTodo)
	api.POST("/summary", summaryHandler.GenerateSummary)
	api.GET("/summary", summaryHandler.GetLatestSummary)

	app.router = r
	return app
}

func (a *testApp) do(t *testing.T, method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-Test-User", userID)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, "body: %s", w.Body.String())
}

