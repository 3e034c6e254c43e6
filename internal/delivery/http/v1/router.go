package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"job-copilot-backend/config"
	"job-copilot-backend/internal/delivery/http/middleware"
	"job-copilot-backend/internal/delivery/http/response"
	"job-copilot-backend/internal/domain"
	"job-copilot-backend/internal/usecase"
)

type RouterDeps struct {
	ProfileUC     domain.ProfileUsecase
	AutofillUC    domain.AutofillUsecase
	ApplicationUC domain.ApplicationUsecase
	AnswerUC      domain.AnswerUsecase
	ResumeUC      domain.ResumeUsecase
	FeedbackSink  domain.FeedbackSink
	HealthUC      usecase.HealthUsecase
	AccessLogger  *zap.Logger
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	cfg := deps.Config
	window := cfg.RateLimitWindow()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL, cfg.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	if deps.AccessLogger != nil {
		r.Use(middleware.AccessLog(deps.AccessLogger))
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	r.Use(middleware.RateLimitMiddleware(middleware.APIRateLimitConfig(cfg.RateLimitThreshold, window)))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", deps.HealthUC.Check(c.Request.Context()))
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protected.Use(middleware.CSRFMiddleware(cfg.IsProduction()))
	{
		// Generation endpoints share a tighter per-user budget
		generation := middleware.RateLimitMiddleware(middleware.GenerationRateLimitConfig(cfg.RateLimitThreshold, window))

		NewProfileHandler(protected, deps.ProfileUC)
		NewAutofillHandler(protected, deps.AutofillUC, generation)
		NewApplicationHandler(protected, deps.ApplicationUC)
		NewAnswerHandler(protected, deps.AnswerUC, generation)
		NewResumeHandler(protected, deps.ResumeUC, generation)
		NewFeedbackHandler(protected, deps.FeedbackSink)
	}

	return r
}
