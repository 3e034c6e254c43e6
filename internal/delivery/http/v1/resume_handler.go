package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"job-copilot-backend/internal/delivery/http/response"
	"job-copilot-backend/internal/domain"
	"job-copilot-backend/pkg/apperror"
)

type ResumeHandler struct {
	resumeUC domain.ResumeUsecase
}

// NewResumeHandler registers resume analysis routes
func NewResumeHandler(r *gin.RouterGroup, resumeUC domain.ResumeUsecase, generation gin.HandlerFunc) {
	handler := &ResumeHandler{resumeUC: resumeUC}

	r.POST("/resume/analyze", generation, handler.Analyze)
}

// Analyze godoc
// @Summary      Analyze resume fit
// @Description  Scores the stored profile against a job's requirement keywords and suggests improvements
// @Tags         resume
// @Accept       json
// @Produce      json
// @Param        body  body      domain.AnalyzeResumeRequest  true  "Job keywords and optional resume text"
// @Success      200   {object}  response.Response{data=domain.ResumeAnalysis}
// @Failure      400   {object}  response.Response
// @Failure      429   {object}  response.Response
// @Failure      502   {object}  response.Response
// @Router       /resume/analyze [post]
// @Security     BearerAuth
func (h *ResumeHandler) Analyze(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req domain.AnalyzeResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	analysis, err := h.resumeUC.Analyze(c.Request.Context(), userID, req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume analyzed", analysis)
}
