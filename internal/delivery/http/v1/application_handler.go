package v1

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"job-copilot-backend/internal/delivery/http/response"
	"job-copilot-backend/internal/domain"
	"job-copilot-backend/pkg/apperror"
)

var exportContentTypes = map[string]string{
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".csv":  "text/csv; charset=utf-8",
}

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application tracker routes
func NewApplicationHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	apps := r.Group("/applications")
	{
		apps.GET("", handler.Dashboard)
		apps.POST("", handler.Create)
		apps.GET("/stats", handler.Stats)
		apps.GET("/statuses", handler.Statuses)
		apps.GET("/export", handler.Export)
		apps.PATCH("/:id/status", handler.UpdateStatus)
	}
}

// UpdateStatusRequest is the request payload for moving an application
type UpdateStatusRequest struct {
	Status domain.Status `json:"status" binding:"required"`
}

// Dashboard godoc
// @Summary      List my applications
// @Description  Applications with progress, stats, pipeline and recent activity
// @Tags         applications
// @Produce      json
// @Param        filter  query     string  false  "all, active, interviews or an exact status"
// @Param        sort    query     string  false  "date (default), company or status"
// @Success      200     {object}  response.Response{data=domain.ApplicationDashboard}
// @Router       /applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Dashboard(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	dash, err := h.applicationUC.Dashboard(c.Request.Context(), userID, c.Query("filter"), c.Query("sort"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", dash)
}

// Create godoc
// @Summary      Record an application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        body  body      domain.CreateApplicationRequest  true  "Application"
// @Success      201   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Router       /applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Create(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req domain.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	app, err := h.applicationUC.Create(c.Request.Context(), userID, req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application recorded", app)
}

// UpdateStatus godoc
// @Summary      Update application status
// @Description  Any status of the vocabulary may be set, in any order
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Application ID"
// @Param        body  body      UpdateStatusRequest  true  "New status"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /applications/{id}/status [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("status is required"))
		return
	}

	app, err := h.applicationUC.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated", app)
}

// Stats godoc
// @Summary      Application statistics
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.ApplicationStats}
// @Router       /applications/stats [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Stats(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	stats, err := h.applicationUC.Stats(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Stats retrieved", stats)
}

// Statuses godoc
// @Summary      Status vocabulary
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.StatusInfo}
// @Router       /applications/statuses [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Statuses(c *gin.Context) {
	response.Success(c, http.StatusOK, "Statuses retrieved", h.applicationUC.Statuses())
}

// Export godoc
// @Summary      Export applications
// @Tags         applications
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Param        format  query  string  false  "xlsx (default) or csv"
// @Success      200
// @Failure      400  {object}  response.Response
// @Router       /applications/export [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Export(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	data, filename, err := h.applicationUC.Export(c.Request.Context(), userID, c.Query("format"))
	if err != nil {
		c.Error(err)
		return
	}

	contentType, ok := exportContentTypes[filepath.Ext(filename)]
	if !ok {
		contentType = "application/octet-stream"
	}
	response.Attachment(c, filename, contentType, data)
}
