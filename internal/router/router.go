package router

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cpc-orbit/orbit-backend/internal/config"
	"github.com/cpc-orbit/orbit-backend/internal/handler"
	"github.com/cpc-orbit/orbit-backend/internal/middleware"
	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/response"
	"github.com/cpc-orbit/orbit-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Import     *handler.ImportHandler
	College    *handler.CollegeHandler
	Department *handler.DepartmentHandler
	Program    *handler.ProgramHandler
	Faculty    *handler.FacultyHandler
	Student    *handler.StudentHandler
	Subject    *handler.SubjectHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", response.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{response.HeaderRequestID}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Brotli())

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := []gin.HandlerFunc{
		middleware.RequireAuth(authService),
		middleware.CheckRevokedToken(authService),
	}

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	loginLimiter := middleware.NewRateLimiter(cfg.AuthRateLimit, time.Minute)

	api := router.Group("/api", middleware.NoStore())

	auth := api.Group("/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", loginLimiter.Middleware(), handlers.Auth.Login)

		authed := auth.Group("", requireAuth...)
		authed.POST("/logout", handlers.Auth.Logout)
		authed.GET("/me", handlers.Auth.Me)
		authed.POST("/bulk-register", middleware.RequireRole(model.RoleAdmin), handlers.Import.BulkRegister)
	}

	// ─── 2. Admin Group (JWT + role) ───────────────────────────────────
	adminAPI := api.Group("/admin")
	adminAPI.Use(requireAuth...)
	adminAPI.Use(middleware.RequireRole(model.RoleAdmin))
	{
		// Colleges
		adminAPI.GET("/colleges", handlers.College.List)
		adminAPI.POST("/colleges", handlers.College.Create)
		adminAPI.GET("/colleges/:id", handlers.College.Get)
		adminAPI.PUT("/colleges/:id", handlers.College.Update)
		adminAPI.DELETE("/colleges/:id", handlers.College.Delete)
		adminAPI.GET("/colleges/:id/stats", handlers.College.Stats)
		adminAPI.GET("/colleges/:id/departments", handlers.Department.ListByCollege)
		adminAPI.POST("/colleges/:id/departments", handlers.Department.Create)
		adminAPI.GET("/colleges/:id/programs", handlers.Program.ListByCollege)
		adminAPI.POST("/colleges/:id/programs", handlers.Program.Create)

		// Departments
		adminAPI.GET("/departments/:id", handlers.Department.Get)
		adminAPI.PUT("/departments/:id", handlers.Department.Update)
		adminAPI.DELETE("/departments/:id", handlers.Department.Delete)
		adminAPI.PATCH("/departments/:id/toggle-status", handlers.Department.ToggleStatus)
		adminAPI.GET("/departments/:id/faculties", handlers.Faculty.ListByDepartment)
		adminAPI.POST("/departments/:id/faculties", handlers.Faculty.Create)
		adminAPI.GET("/departments/:id/students", handlers.Student.ListByDepartment)
		adminAPI.POST("/departments/:id/students", handlers.Student.Create)
		adminAPI.GET("/departments/:id/subjects", handlers.Subject.ListByDepartment)
		adminAPI.POST("/departments/:id/subjects", handlers.Subject.Create)
		adminAPI.GET("/departments/:id/subject-options/faculties", handlers.Faculty.Options)
		adminAPI.GET("/departments/:id/subject-options/prerequisites", handlers.Subject.PrerequisiteOptions)

		// Programs
		adminAPI.GET("/programs/:id", handlers.Program.Get)
		adminAPI.PUT("/programs/:id", handlers.Program.Update)
		adminAPI.DELETE("/programs/:id", handlers.Program.Delete)

		// Faculties
		adminAPI.GET("/faculties/:id", handlers.Faculty.Get)
		adminAPI.PUT("/faculties/:id", handlers.Faculty.Update)
		adminAPI.DELETE("/faculties/:id", handlers.Faculty.Delete)
		adminAPI.PATCH("/faculties/:id/toggle-status", handlers.Faculty.ToggleStatus)

		// Students
		adminAPI.GET("/students/:id", handlers.Student.Get)
		adminAPI.PUT("/students/:id", handlers.Student.Update)
		adminAPI.DELETE("/students/:id", handlers.Student.Delete)
		adminAPI.PATCH("/students/:id/toggle-status", handlers.Student.ToggleStatus)

		// Subjects
		adminAPI.GET("/subjects/:id", handlers.Subject.Get)
		adminAPI.PUT("/subjects/:id", handlers.Subject.Update)
		adminAPI.DELETE("/subjects/:id", handlers.Subject.Delete)
		adminAPI.PATCH("/subjects/:id/toggle-status", handlers.Subject.ToggleStatus)
	}

	// ─── 3. Dashboard bundle ───────────────────────────────────────────
	// Hashed build assets are immutable, so they get a year of caching.
	if cfg.StaticDir != "" {
		assets := router.Group("/assets")
		assets.Use(middleware.CacheControl(365 * 24 * time.Hour))
		{
			assets.Static("/", filepath.Join(cfg.StaticDir, "assets"))
		}
	}
	router.NoRoute(spaFallback(cfg.StaticDir))

	return router
}

// spaFallback serves files from dir and answers any other non-API GET with
// index.html so client-side routes survive a reload. API paths and a missing
// dir produce the JSON 404 envelope.
func spaFallback(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if dir == "" || strings.HasPrefix(path, "/api/") || c.Request.Method != http.MethodGet {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}

		c.Header("Cache-Control", "no-cache")
		file := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+path)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	}
}
