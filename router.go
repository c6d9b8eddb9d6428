package main

import (
	"net/http"

	"github.com/SumanthSV/AI-Todo-summarizer/handler"
	"github.com/SumanthSV/AI-Todo-summarizer/middleware"
	"github.com/SumanthSV/AI-Todo-summarizer/repository"
	"github.com/SumanthSV/AI-Todo-summarizer/services"
	"github.com/SumanthSV/AI-Todo-summarizer/usecase"
	"github.com/SumanthSV/AI-Todo-summarizer/utils"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type routerDeps struct {
	logger       hclog.Logger
	repos        *repository.Repos
	tokens       *services.TokenService
	blacklist    services.TokenBlacklist
	broker       services.LiveBroker
	todos        *usecase.TodoService
	summaries    *usecase.SummaryService
	users        *usecase.UserService
	maxBodyBytes int64
}

func setupRouter(d routerDeps) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.EnhancedRecoveryMiddleware(d.logger.Named("recovery")))
	router.Use(middleware.RequestLogger(d.logger.Named("http")))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeaders())

	healthHandler := handler.NewHealthHandler(d.repos, d.logger)
	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := handler.NewAuthHandler(d.users, d.logger)
	todoHandler := handler.NewTodoHandler(d.todos, d.logger)
	summaryHandler := handler.NewSummaryHandler(d.summaries, d.logger)
	liveHandler := handler.NewLiveHandler(d.todos, d.summaries, d.broker, d.logger)

	api := router.Group("/api")
	api.Use(middleware.CacheControlMiddleware("no-store"))
	api.Use(middleware.RequestSizeLimiter(d.maxBodyBytes))

	// Public routes (no authentication required)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/anonymous", authHandler.Anonymous)
	}

	// Protected routes (authentication required)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(d.tokens, d.blacklist, d.logger.Named("auth")))
	{
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/user/me", authHandler.Me)
		protected.GET("/sessions", authHandler.Sessions)

		todos := protected.Group("/todos")
		{
			todos.GET("", todoHandler.ListTodos)
			todos.GET("/stats", todoHandler.GetStats)
			todos.POST("", todoHandler.CreateTodo)
			todos.POST("/:id/toggle", todoHandler.ToggleTodo)
			todos.DELETE("/:id", todoHandler.DeleteTodo)
		}

		protected.POST("/summary", summaryHandler.GenerateSummary)
		protected.GET("/summary", summaryHandler.GetLatestSummary)

		protected.GET("/live", liveHandler.Stream)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, &utils.Response{Error: "Route not found"})
	})

	return router
}
