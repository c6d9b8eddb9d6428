package handler

import (
	"errors"

	"github.com/SumanthSV/AI-Todo-summarizer/middleware"
	"github.com/SumanthSV/AI-Todo-summarizer/usecase"
	"github.com/SumanthSV/AI-Todo-summarizer/utils"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
)

// respondError maps usecase errors onto the JSON envelope. Anything it does
// not recognise is logged and reported as a 500.
func respondError(c *gin.Context, logger hclog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		utils.Unauthorized(c, "Not authenticated")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		utils.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, usecase.ErrValidation):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, usecase.ErrNotFoundOrUnauthorized):
		utils.NotFound(c, "Todo not found or unauthorized")
	case errors.Is(err, usecase.ErrEmailTaken):
		utils.Conflict(c, "Email already registered")
	case errors.Is(err, usecase.ErrExternalService):
		utils.BadGateway(c, fallback)
	default:
		logger.Error(fallback, "error", err, "request_id", c.GetString("request_id"))
		utils.InternalError(c, fallback)
	}
	_ = c.Error(err)
}

func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserID)
}
