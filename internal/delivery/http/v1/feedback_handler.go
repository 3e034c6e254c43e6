package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"job-copilot-backend/internal/delivery/http/response"
	"job-copilot-backend/internal/domain"
	"job-copilot-backend/pkg/apperror"
)

type FeedbackHandler struct {
	sink domain.FeedbackSink
}

// NewFeedbackHandler registers the feedback route
func NewFeedbackHandler(r *gin.RouterGroup, sink domain.FeedbackSink) {
	handler := &FeedbackHandler{sink: sink}

	r.POST("/feedback", handler.Submit)
}

// SubmitFeedbackRequest is a verdict on generated content
type SubmitFeedbackRequest struct {
	ContentID string         `json:"contentId" binding:"required"`
	Type      domain.Verdict `json:"type" binding:"required"`
	Comment   string         `json:"comment"`
}

// Submit godoc
// @Summary      Submit feedback
// @Description  Acknowledged immediately; recording happens in the background
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        body  body      SubmitFeedbackRequest  true  "Feedback"
// @Success      202   {object}  response.Response{data=domain.FeedbackAck}
// @Failure      400   {object}  response.Response
// @Router       /feedback [post]
// @Security     BearerAuth
func (h *FeedbackHandler) Submit(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("contentId and type are required"))
		return
	}

	ack, err := h.sink.Submit(c.Request.Context(), userID, req.ContentID, req.Type, req.Comment)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusAccepted, "Feedback received", ack)
}
