package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shikkhaloy/school-backend/internal/config"
	"github.com/shikkhaloy/school-backend/internal/handler"
	"github.com/shikkhaloy/school-backend/internal/middleware"
	"github.com/shikkhaloy/school-backend/internal/model"
	"github.com/shikkhaloy/school-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Admission  *handler.AdmissionHandler
	User       *handler.UserHandler
	Student    *handler.StudentHandler
	Class      *handler.ClassHandler
	Subject    *handler.SubjectHandler
	Teacher    *handler.TeacherHandler
	Notice     *handler.NoticeHandler
	Story      *handler.StoryHandler
	RollUpdate *handler.RollUpdateHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(auth middleware.IdentityResolver, handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

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
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID", middleware.HeaderIdentity}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	requireIdentity := middleware.RequireIdentity(auth, cfg.TrustHeaderIdentity)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	// Rate limiter for the public admission form (10 submissions per minute per IP).
	admissionLimiter := middleware.NewRateLimiter(10, time.Minute)

	// ─── 1. Public Group (No Auth) ─────────────────────────────────────
	public := router.Group("/api/v1")
	{
		public.POST("/auth/login", handlers.Auth.Login)
		public.POST("/pending-students", admissionLimiter.Middleware(), handlers.Admission.Submit)

		public.GET("/classes", handlers.Class.ListClasses)
		public.GET("/notices", handlers.Notice.ListNotices)
		public.GET("/notices/:id", handlers.Notice.GetNotice)
		public.GET("/stories", handlers.Story.ListStories)
		public.GET("/stories/:id", handlers.Story.GetStory)
		public.GET("/teachers", handlers.Teacher.ListTeachers)
		public.GET("/teachers/:id", handlers.Teacher.GetTeacher)
		public.GET("/subjects", handlers.Subject.ListSubjects)
		public.GET("/subjects/:id", handlers.Subject.GetSubject)
	}

	// ─── 2. Authenticated Group ────────────────────────────────────────
	api := router.Group("/api/v1")
	api.Use(requireIdentity)
	{
		// Pending admissions (admin decisions)
		api.GET("/pending-students", adminOnly, handlers.Admission.List)
		api.GET("/pending-students/:email", adminOnly, handlers.Admission.Get)
		api.POST("/pending-students/:email/approve", adminOnly, handlers.Admission.Approve)
		api.POST("/pending-students/:email/reject", adminOnly, handlers.Admission.Reject)

		// Users
		api.GET("/users", adminOnly, handlers.User.ListUsers)
		api.GET("/users/:email", middleware.RequireSelfOrAdmin("email"), handlers.User.GetUser)
		api.PATCH("/users/:email", middleware.RequireSelfOrAdmin("email"), handlers.User.UpdateUser)
		api.PATCH("/users/:email/remove-class", adminOnly, handlers.User.RemoveClassAssignment)
		api.DELETE("/users/:email", adminOnly, handlers.User.DeleteUser)

		// Students
		api.GET("/students", middleware.RequireRole(model.RoleAdmin, model.RoleTeacher), handlers.Student.ListStudents)
		api.GET("/students/:email", middleware.RequireSelfOrAdmin("email"), handlers.Student.GetStudent)
		api.PATCH("/students/:email", middleware.RequireSelfOrAdmin("email"), handlers.Student.UpdateStudent)
		api.DELETE("/students/:email", adminOnly, handlers.Student.DeleteStudent)

		// Content management (admin writes)
		api.POST("/notices", adminOnly, handlers.Notice.CreateNotice)
		api.PUT("/notices/:id", adminOnly, handlers.Notice.UpdateNotice)
		api.DELETE("/notices/:id", adminOnly, handlers.Notice.DeleteNotice)

		api.POST("/stories", adminOnly, handlers.Story.CreateStory)
		api.PUT("/stories/:id", adminOnly, handlers.Story.UpdateStory)
		api.DELETE("/stories/:id", adminOnly, handlers.Story.DeleteStory)

		api.POST("/subjects", adminOnly, handlers.Subject.CreateSubject)
		api.PUT("/subjects/:id", adminOnly, handlers.Subject.UpdateSubject)
		api.DELETE("/subjects/:id", adminOnly, handlers.Subject.DeleteSubject)

		api.POST("/teachers", adminOnly, handlers.Teacher.CreateTeacher)
		api.PUT("/teachers/:id", adminOnly, handlers.Teacher.UpdateTeacher)
		api.DELETE("/teachers/:id", adminOnly, handlers.Teacher.DeleteTeacher)

		api.GET("/roll-updates", middleware.RequireRole(model.RoleAdmin, model.RoleTeacher), handlers.RollUpdate.ListRollUpdates)
		api.POST("/roll-updates", adminOnly, handlers.RollUpdate.CreateRollUpdate)
		api.DELETE("/roll-updates/:id", adminOnly, handlers.RollUpdate.DeleteRollUpdate)
	}

	return router
}
