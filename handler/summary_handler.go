package handler

import (
	"github.com/SumanthSV/AI-Todo-summarizer/dto"
	"github.com/SumanthSV/AI-Todo-summarizer/usecase"
	"github.com/SumanthSV/AI-Todo-summarizer/utils"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
)

type SummaryHandler struct {
	service *usecase.SummaryService
	logger  hclog.Logger
}

func NewSummaryHandler(service *usecase.SummaryService, logger hclog.Logger) *SummaryHandler {
	return &SummaryHandler{service: service, logger: logger.Named("summary")}
}

func (h *SummaryHandler) GenerateSummary(c *gin.Context) {
	summary, err := h.service.Generate(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to generate summary")
		return
	}
	utils.Success(c, dto.SummaryResponse{Summary: summary})
}

func (h *SummaryHandler) GetLatestSummary(c *gin.Context) {
	summary, err := h.service.Latest(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch summary")
		return
	}
	utils.Success(c, dto.LatestSummaryResponse{Summary: summary})
}
