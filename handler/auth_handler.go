package handler

import (
	"time"

	"github.com/SumanthSV/AI-Todo-summarizer/dto"
	"github.com/SumanthSV/AI-Todo-summarizer/middleware"
	"github.com/SumanthSV/AI-Todo-summarizer/model"
	"github.com/SumanthSV/AI-Todo-summarizer/usecase"
	"github.com/SumanthSV/AI-Todo-summarizer/utils"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
)

type AuthHandler struct {
	service *usecase.UserService
	logger  hclog.Logger
}

func NewAuthHandler(service *usecase.UserService, logger hclog.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: logger.Named("auth")}
}

func clientInfo(c *gin.Context) usecase.ClientInfo {
	return usecase.ClientInfo{
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	}
}

func authResponse(res *usecase.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		SessionID: res.SessionID,
		User:      res.User,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	res, err := h.service.Register(c.Request.Context(), req.Email, req.Password, clientInfo(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to register user")
		return
	}
	utils.Created(c, authResponse(res))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	res, err := h.service.Login(c.Request.Context(), req.Email, req.Password, clientInfo(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to log in")
		return
	}
	utils.Success(c, authResponse(res))
}

func (h *AuthHandler) Anonymous(c *gin.Context) {
	res, err := h.service.Anonymous(c.Request.Context(), clientInfo(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to sign in")
		return
	}
	utils.Created(c, authResponse(res))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var expiresAt time.Time
	if v, ok := c.Get(middleware.ContextTokenExpiresAt); ok {
		expiresAt, _ = v.(time.Time)
	}

	err := h.service.Logout(c.Request.Context(),
		currentUserID(c),
		c.GetString(middleware.ContextSessionID),
		c.GetString(middleware.ContextToken),
		expiresAt,
	)
	if err != nil {
		respondError(c, h.logger, err, "Failed to logout")
		return
	}
	utils.Success(c, gin.H{"message": "Successfully logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch user")
		return
	}
	utils.Success(c, user)
}

func (h *AuthHandler) Sessions(c *gin.Context) {
	sessions, err := h.service.Sessions(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch sessions")
		return
	}
	if sessions == nil {
		sessions = []*model.Session{}
	}
	utils.Success(c, dto.SessionsResponse{Sessions: sessions})
}
