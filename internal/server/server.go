package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"gymcore/internal/auth"
	"gymcore/internal/class"
	"gymcore/internal/complaint"
	"gymcore/internal/config"
	"gymcore/internal/email"
	"gymcore/internal/evaluation"
	"gymcore/internal/exercise"
	"gymcore/internal/googleauth"
	"gymcore/internal/membership"
	"gymcore/internal/opinion"
	"gymcore/internal/person"
	"gymcore/internal/promotion"
	"gymcore/internal/reservation"
	"gymcore/internal/training"
	"gymcore/internal/user"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
}

func New(database *sqlx.DB, cfg *config.Config, emailService *email.Service, rdb *redis.Client) *Server {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		corsMiddleware(),
		RequestLoggingMiddleware(),
		MetricsMiddleware(),
		RateLimitMiddleware(50, 100),
	)

	userRepo := user.NewRepository(database)
	userService := user.NewService(userRepo, user.NewPendingStore(rdb), emailService, cfg.JWTSecret)
	userHandler := user.NewHandler(userService)

	googleHandler := googleauth.NewHandler(
		cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL,
		userService, cfg.JWTSecret, cfg.FrontendURL,
	)

	personHandler := person.NewHandler(person.NewRepository(database))

	classRepo := class.NewRepository(database)
	classHandler := class.NewHandler(class.NewService(classRepo, userRepo))

	reservationHandler := reservation.NewHandler(
		reservation.NewService(reservation.NewRepository(database), classRepo, userRepo, emailService),
	)

	exerciseRepo := exercise.NewRepository(database)
	exerciseHandler := exercise.NewHandler(exerciseRepo)

	trainingHandler := training.NewHandler(training.NewService(training.NewRepository(database), exerciseRepo))

	membershipHandler := membership.NewHandler(membership.NewService(membership.NewRepository(database), userRepo))

	promotionHandler := promotion.NewHandler(promotion.NewService(promotion.NewRepository(database)))

	evaluationHandler := evaluation.NewHandler(evaluation.NewService(evaluation.NewRepository(database)))

	opinionHandler := opinion.NewHandler(opinion.NewService(opinion.NewRepository(database)))

	complaintHandler := complaint.NewHandler(
		complaint.NewService(complaint.NewRepository(database), userRepo, classRepo),
	)

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())

	router.POST("/users/register", userHandler.Register)
	router.POST("/users/verify", userHandler.Verify)
	router.POST("/login", userHandler.Login)
	router.GET("/auth/google", googleHandler.Login)
	router.GET("/auth/google/callback", googleHandler.Callback)

	authMiddleware := auth.Middleware(cfg.JWTSecret, userRepo)

	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/users", userHandler.List)
		protected.POST("/users/change-password", userHandler.ChangePassword)

		protected.GET("/persons/me", personHandler.GetMine)
		protected.PUT("/persons/me", personHandler.UpsertMine)
		protected.DELETE("/persons/me", personHandler.DeleteMine)

		protected.GET("/classes", classHandler.List)
		protected.GET("/my-classes", classHandler.ListMine)
		protected.GET("/classes/:id", classHandler.Get)
		protected.GET("/classes/:id/details", classHandler.GetDetails)

		protected.POST("/reservations", reservationHandler.Create)
		protected.GET("/my-reservations", reservationHandler.ListMine)
		protected.GET("/reservations/class/:classID", reservationHandler.ListByClass)
		protected.GET("/reservations/:id/details", reservationHandler.GetDetails)
		protected.PUT("/reservations/:id", reservationHandler.Update)
		protected.PUT("/reservations/:id/cancel", reservationHandler.Cancel)
		protected.PUT("/reservations/:id/attendance", reservationHandler.MarkAttendance)

		protected.GET("/exercises", exerciseHandler.List)
		protected.GET("/exercises/:id", exerciseHandler.Get)

		protected.POST("/trainings", trainingHandler.Create)
		protected.GET("/my-trainings", trainingHandler.ListMine)
		protected.GET("/trainings/:id", trainingHandler.Get)
		protected.PUT("/trainings/:id", trainingHandler.Update)
		protected.DELETE("/trainings/:id", trainingHandler.Delete)

		protected.GET("/my-membership", membershipHandler.GetMine)
		protected.GET("/memberships/:id", membershipHandler.Get)

		protected.GET("/promotions", promotionHandler.List)
		protected.GET("/promotions/:id", promotionHandler.Get)

		protected.GET("/services", evaluationHandler.ListServices)
		protected.POST("/evaluations", evaluationHandler.Create)
		protected.GET("/my-evaluations", evaluationHandler.ListMine)
		protected.GET("/evaluations/:id", evaluationHandler.Get)
		protected.PUT("/evaluations/:id", evaluationHandler.Update)
		protected.DELETE("/evaluations/:id", evaluationHandler.Delete)
		protected.GET("/evaluations/service/:serviceID", evaluationHandler.ListByService)
		protected.GET("/evaluations/service/:serviceID/stats", evaluationHandler.Stats)

		protected.POST("/opinions", opinionHandler.Create)
		protected.GET("/my-opinions", opinionHandler.ListMine)
		protected.GET("/opinions/:id", opinionHandler.Get)
		protected.PUT("/opinions/:id", opinionHandler.Update)
		protected.DELETE("/opinions/:id", opinionHandler.Delete)

		protected.POST("/complaints", complaintHandler.Create)
		protected.GET("/my-complaints", complaintHandler.ListMine)
		protected.GET("/complaints/received", complaintHandler.ListAboutMe)
		protected.GET("/complaints/:id", complaintHandler.Get)
		protected.GET("/complaints/:id/details", complaintHandler.GetDetails)
		protected.PUT("/complaints/:id", complaintHandler.Update)
		protected.DELETE("/complaints/:id", complaintHandler.Delete)
	}

	// Class and exercise catalogs are managed by staff. Ownership of a
	// specific class is still enforced in the service layer.
	staff := router.Group("/")
	staff.Use(authMiddleware, auth.RequireRoles(auth.RoleAdmin, auth.RoleTrainer))
	{
		staff.POST("/classes", classHandler.Create)
		staff.PUT("/classes/:id", classHandler.Update)
		staff.DELETE("/classes/:id", classHandler.Delete)

		staff.POST("/exercises", exerciseHandler.Create)
		staff.PUT("/exercises/:id", exerciseHandler.Update)
		staff.DELETE("/exercises/:id", exerciseHandler.Delete)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRoles(auth.RoleAdmin))
	{
		admin.POST("/users/:userID/roles", userHandler.AssignRole)
		admin.DELETE("/users/:userID/roles/:role", userHandler.RevokeRole)

		admin.GET("/persons", personHandler.List)
		admin.GET("/persons/:userID", personHandler.GetByUser)

		admin.GET("/memberships", membershipHandler.List)
		admin.POST("/memberships", membershipHandler.Create)
		admin.GET("/memberships/:id/details", membershipHandler.GetDetails)
		admin.PUT("/memberships/:id", membershipHandler.Update)
		admin.DELETE("/memberships/:id", membershipHandler.Delete)

		admin.POST("/promotions", promotionHandler.Create)
		admin.PUT("/promotions/:id", promotionHandler.Update)
		admin.DELETE("/promotions/:id", promotionHandler.Delete)

		admin.POST("/services", evaluationHandler.CreateService)
		admin.PUT("/services/:id/active", evaluationHandler.SetServiceActive)

		admin.GET("/opinions", opinionHandler.List)
		admin.GET("/opinions/:id/details", opinionHandler.GetDetails)
		admin.PUT("/opinions/:id/answer", opinionHandler.Answer)

		admin.GET("/complaints", complaintHandler.List)
	}

	return &Server{
		router: router,
		http:   &http.Server{Addr: ":" + cfg.Port, Handler: router},
	}
}

func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
