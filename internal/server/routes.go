package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Init swagger doc
	_ "github.com/antonpetuchow-a11y/nomado24-job-board/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/auth"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/controller/application"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/controller/company"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/controller/job"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/controller/user"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/middleware"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/model"
)

// RegisterRoutes builds the gin engine with every endpoint bound to its
// handler and middleware chain.
func (s *Server) RegisterRoutes() http.Handler {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.Config.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	authController := auth.NewController(s.Users, s.Companies, s.Tokens)
	userController := user.NewController(s.Users, s.Companies)
	companyController := company.NewController(s.Companies)
	jobController := job.NewController(s.Jobs, s.Companies)
	applicationController := application.NewController(s.Applications, s.Jobs, s.Storage, s.Config.MaxFileSize)

	authenticate := middleware.Authenticate(s.Tokens, s.Users)

	r.GET("/health", s.healthHandler)
	r.Static("/uploads", s.Config.UploadDir)

	api := r.Group("/api")
	{
		authRoute := api.Group("/auth")
		{
			authRoute.Use(middleware.RateLimiter(s.Config.RateLimit))
			authRoute.POST("register", authController.Register)
			authRoute.POST("login", authController.Login)
			authRoute.GET("me", authenticate, authController.Me)
		}

		userRoute := api.Group("/users")
		{
			userRoute.Use(authenticate, middleware.RequireRole(model.RoleAdmin))
			userRoute.GET("", userController.List)
			userRoute.GET(":id", userController.GetByID)
			userRoute.POST("", userController.Create)
			userRoute.PUT(":id", userController.Update)
			userRoute.DELETE(":id", userController.Delete)
			userRoute.GET("stats/overview", userController.Stats)
		}

		companyRoute := api.Group("/companies")
		{
			companyRoute.Use(authenticate, middleware.RequireRole(model.RoleAdmin))
			companyRoute.GET("", companyController.List)
			companyRoute.GET(":id", companyController.GetByID)
			companyRoute.POST("", companyController.Create)
			companyRoute.PUT(":id", companyController.Update)
			companyRoute.DELETE(":id", companyController.Delete)
		}

		jobRoute := api.Group("/jobs")
		{
			jobRoute.GET("", jobController.List)

			needAuth := jobRoute.Group("")
			{
				needAuth.Use(authenticate)
				needAuth.GET("company/my-jobs",
					middleware.RequireRole(model.RoleCompany, model.RoleAdmin), jobController.MyJobs)
				needAuth.POST("",
					middleware.RequireRole(model.RoleCompany, model.RoleAdmin), jobController.Create)
				needAuth.PUT(":id",
					middleware.RequireRole(model.RoleCompany, model.RoleAdmin), jobController.Update)
				needAuth.DELETE(":id",
					middleware.RequireRole(model.RoleCompany, model.RoleAdmin), jobController.Delete)
			}

			jobRoute.GET(":id", jobController.GetByID)
		}

		applicationRoute := api.Group("/applications")
		{
			applicationRoute.Use(authenticate)
			applicationRoute.GET("my-applications",
				middleware.RequireRole(model.RoleUser), applicationController.MyApplications)
			applicationRoute.GET("job/:jobId",
				middleware.RequireRole(model.RoleCompany, model.RoleAdmin), applicationController.ListByJob)
			applicationRoute.POST("jobs/:jobId/apply",
				middleware.RequireRole(model.RoleUser),
				middleware.SizeLimit(s.Config.MaxFileSize),
				applicationController.Apply)
			applicationRoute.PATCH(":id/status",
				middleware.RequireRole(model.RoleCompany, model.RoleAdmin), applicationController.UpdateStatus)
			applicationRoute.DELETE(":id", applicationController.Delete)
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// healthHandler reports database connectivity and pool statistics.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
