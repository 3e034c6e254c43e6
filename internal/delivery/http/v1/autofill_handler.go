package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"job-copilot-backend/internal/delivery/http/response"
	"job-copilot-backend/internal/domain"
	"job-copilot-backend/pkg/apperror"
)

type AutofillHandler struct {
	autofillUC domain.AutofillUsecase
}

// NewAutofillHandler registers autofill routes. generation wraps the
// endpoints that reach the AI collaborators.
func NewAutofillHandler(r *gin.RouterGroup, autofillUC domain.AutofillUsecase, generation gin.HandlerFunc) {
	handler := &AutofillHandler{autofillUC: autofillUC}

	autofill := r.Group("/autofill")
	{
		autofill.POST("/detect", generation, handler.DetectForm)
		autofill.POST("/sessions", handler.CreateSession)
		autofill.GET("/sessions/:id", handler.GetSession)
		autofill.PATCH("/sessions/:id/fields/:fieldId", handler.EditField)
		autofill.POST("/sessions/:id/fields/:fieldId/feedback", handler.FieldFeedback)
	}
}

// DetectFormRequest names the page whose form should be detected
type DetectFormRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// EditFieldRequest is a manual correction of one mapped value
type EditFieldRequest struct {
	Value string `json:"value" binding:"max=5000"`
}

// FieldFeedbackRequest is a thumbs up/down on one mapped value
type FieldFeedbackRequest struct {
	Useful *bool `json:"useful" binding:"required"`
}

// DetectForm godoc
// @Summary      Detect form fields
// @Description  Detects the application form fields on a job page
// @Tags         autofill
// @Accept       json
// @Produce      json
// @Param        body  body      DetectFormRequest  true  "Page URL"
// @Success      200   {object}  response.Response{data=domain.DetectedForm}
// @Failure      400   {object}  response.Response
// @Failure      502   {object}  response.Response
// @Router       /autofill/detect [post]
// @Security     BearerAuth
func (h *AutofillHandler) DetectForm(c *gin.Context) {
	var req DetectFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("A valid page url is required"))
		return
	}

	form, err := h.autofillUC.DetectForm(c.Request.Context(), req.URL)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Form detected", form)
}

// CreateSession godoc
// @Summary      Map profile onto form fields
// @Description  Maps the stored profile onto the given fields and stores the session
// @Tags         autofill
// @Accept       json
// @Produce      json
// @Param        body  body      domain.DetectedForm  true  "Detected form"
// @Success      201   {object}  response.Response{data=domain.AutofillSessionView}
// @Failure      400   {object}  response.Response
// @Failure      422   {object}  response.Response
// @Router       /autofill/sessions [post]
// @Security     BearerAuth
func (h *AutofillHandler) CreateSession(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req domain.DetectedForm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	session, err := h.autofillUC.CreateSession(c.Request.Context(), userID, req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Fields mapped", session)
}

// GetSession godoc
// @Summary      Get a mapping session
// @Tags         autofill
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  response.Response{data=domain.AutofillSessionView}
// @Failure      404  {object}  response.Response
// @Router       /autofill/sessions/{id} [get]
// @Security     BearerAuth
func (h *AutofillHandler) GetSession(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	session, err := h.autofillUC.GetSession(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Session retrieved", session)
}

// EditField godoc
// @Summary      Edit a mapped value
// @Description  Overwrites one value; confidence and aiFilled keep their original values
// @Tags         autofill
// @Accept       json
// @Produce      json
// @Param        id       path      string            true  "Session ID"
// @Param        fieldId  path      string            true  "Field ID"
// @Param        body     body      EditFieldRequest  true  "New value"
// @Success      200      {object}  response.Response{data=domain.AutofillSessionView}
// @Failure      404      {object}  response.Response
// @Router       /autofill/sessions/{id}/fields/{fieldId} [patch]
// @Security     BearerAuth
func (h *AutofillHandler) EditField(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req EditFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	session, err := h.autofillUC.EditField(c.Request.Context(), userID, c.Param("id"), c.Param("fieldId"), req.Value)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Field updated", session)
}

// FieldFeedback godoc
// @Summary      Rate a mapped value
// @Tags         autofill
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "Session ID"
// @Param        fieldId  path      string                true  "Field ID"
// @Param        body     body      FieldFeedbackRequest  true  "Verdict"
// @Success      202      {object}  response.Response{data=domain.FeedbackAck}
// @Failure      404      {object}  response.Response
// @Router       /autofill/sessions/{id}/fields/{fieldId}/feedback [post]
// @Security     BearerAuth
func (h *AutofillHandler) FieldFeedback(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req FieldFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("useful is required"))
		return
	}

	ack, err := h.autofillUC.FieldFeedback(c.Request.Context(), userID, c.Param("id"), c.Param("fieldId"), *req.Useful)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusAccepted, "Feedback received", ack)
}
