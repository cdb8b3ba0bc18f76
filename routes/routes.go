package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vnkhanh/service-survey/config"
	"github.com/vnkhanh/service-survey/controllers"
	"github.com/vnkhanh/service-survey/logger"
	"github.com/vnkhanh/service-survey/middleware"
	"github.com/vnkhanh/service-survey/utils"
)

func SetupRoutes(r *gin.Engine) {
	cfg := config.Current()

	if err := utils.RegisterValidators(); err != nil {
		logger.Log.WithError(err).Fatal("register validators")
	}
	middleware.InitLimiters(cfg.SubmitRatePerMin, cfg.SubmitRateBurst)

	r.GET("/", controllers.Root)
	r.GET("/ping", controllers.Ping)
	r.GET("/health", controllers.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.RespondentIdentity(cfg.RespondentSalt))
	{
		api.GET("/survey-data", controllers.GetSurveyData)

		services := api.Group("/services")
		{
			services.GET("", controllers.ListServices)
			services.GET("/facets", controllers.GetServiceFacets)
			services.GET("/:id", controllers.GetServiceDetail)
			services.GET("/:id/survey", controllers.GetServiceSurvey)

			// bản nháp: cần X-Respondent-ID
			services.GET("/:id/draft", middleware.RequireRespondent(), controllers.GetDraft)
			services.PUT("/:id/draft", middleware.RequireRespondent(), controllers.SaveDraft)
			services.DELETE("/:id/draft", middleware.RequireRespondent(), controllers.DeleteDraft)

			services.POST("/:id/responses", middleware.RateLimitSubmit(), controllers.SubmitResponse)

			services.POST("/:id/feedback", middleware.RateLimitFeedback(), controllers.CreateFeedback)
			services.GET("/:id/feedback", controllers.ListServiceFeedback)

			services.POST("/:id/export", middleware.RequireAdminKey(cfg.AdminAPIKey), controllers.CreateExport)
		}

		api.GET("/responses/:public_id", controllers.GetResponse)
		api.GET("/history", middleware.RequireRespondent(), controllers.GetHistory)

		testimonials := api.Group("/testimonials")
		{
			testimonials.GET("", controllers.ListTestimonials)
			testimonials.GET("/stats", controllers.GetTestimonialStats)
			testimonials.POST("/:id/helpful", middleware.RateLimitFeedback(), controllers.MarkFeedbackHelpful)
		}

		api.GET("/exports/:job_id", middleware.RequireAdminKey(cfg.AdminAPIKey), controllers.GetExport)
	}
}
