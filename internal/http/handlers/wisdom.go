package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stoamedia/wisdom-backend/internal/http/response"
	pkgerrors "github.com/stoamedia/wisdom-backend/internal/pkg/errors"
	"github.com/stoamedia/wisdom-backend/internal/pkg/httpx"
	"github.com/stoamedia/wisdom-backend/internal/wisdom"
)

type WisdomHandler struct {
	svc wisdom.Service
}

func NewWisdomHandler(svc wisdom.Service) *WisdomHandler {
	return &WisdomHandler{svc: svc}
}

type generateWisdomReq struct {
	Theme string `json:"theme"`
}

// POST /api/wisdom
func (h *WisdomHandler) GenerateWisdom(c *gin.Context) {
	var req generateWisdomReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if strings.TrimSpace(req.Theme) == "" {
		response.RespondError(c, http.StatusBadRequest, "theme_required", errors.New("theme is required"))
		return
	}

	result, err := h.svc.Handle(c.Request.Context(), req.Theme)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrInvalidArgument) {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		// Internal details stay in the logs, not the response body.
		status, code := classifyPipelineError(err)
		response.RespondError(c, status, code, errors.New("internal server error"))
		return
	}
	response.RespondOK(c, result)
}

func classifyPipelineError(err error) (int, string) {
	if errors.Is(err, pkgerrors.ErrSchemaViolation) {
		return http.StatusBadGateway, "generation_schema"
	}
	var sc httpx.HTTPStatusCoder
	if errors.As(err, &sc) {
		return http.StatusBadGateway, "upstream_unavailable"
	}
	return http.StatusInternalServerError, "pipeline_failed"
}
