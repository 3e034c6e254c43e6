package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"job-copilot-backend/internal/delivery/http/response"
	"job-copilot-backend/internal/domain"
	"job-copilot-backend/pkg/apperror"
)

type AnswerHandler struct {
	answerUC domain.AnswerUsecase
}

// NewAnswerHandler registers answer generation routes
func NewAnswerHandler(r *gin.RouterGroup, answerUC domain.AnswerUsecase, generation gin.HandlerFunc) {
	handler := &AnswerHandler{answerUC: answerUC}

	r.POST("/answers", generation, handler.Generate)
	r.GET("/answers/questions", handler.CommonQuestions)
}

// Generate godoc
// @Summary      Generate an answer
// @Description  Drafts an answer to an application question from the stored profile
// @Tags         answers
// @Accept       json
// @Produce      json
// @Param        body  body      domain.GenerateAnswerRequest  true  "Question"
// @Success      200   {object}  response.Response{data=domain.Answer}
// @Failure      400   {object}  response.Response
// @Failure      502   {object}  response.Response
// @Router       /answers [post]
// @Security     BearerAuth
func (h *AnswerHandler) Generate(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req domain.GenerateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	answer, err := h.answerUC.Generate(c.Request.Context(), userID, req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Answer generated", answer)
}

// CommonQuestions godoc
// @Summary      Suggested questions
// @Tags         answers
// @Produce      json
// @Success      200  {object}  response.Response{data=[]string}
// @Router       /answers/questions [get]
// @Security     BearerAuth
func (h *AnswerHandler) CommonQuestions(c *gin.Context) {
	response.Success(c, http.StatusOK, "Questions retrieved", h.answerUC.CommonQuestions())
}
