package server

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"crewpay/internal/config"
	"crewpay/internal/identity"
	"crewpay/internal/middleware"
	"crewpay/internal/model"
)

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	log    *zap.Logger
	router *gin.Engine
	mongo  *mongo.Client
}

// New creates a new server instance
func New(cfg *config.Config, log *zap.Logger) (*Server, error) {
	mongoClient, err := Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	db := mongoClient.Database(cfg.Mongo.Database)

	repos := InitRepositories(db)
	services := InitServices(cfg, repos)
	handlers := InitHandlers(services)

	if err := EnsureIndexes(repos); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	verifier := identity.NewTokenVerifier(cfg)
	router := setupRouter(cfg, log, verifier, repos, handlers)

	return &Server{
		cfg:    cfg,
		log:    log,
		router: router,
		mongo:  mongoClient,
	}, nil
}

func Connect(cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the unique indexes backing registration and payment
// idempotency.
func EnsureIndexes(repos *Repositories) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := repos.Users.EnsureIndexes(ctx); err != nil {
		return err
	}
	return repos.Payments.EnsureIndexes(ctx)
}

// Close disconnects MongoDB client
func (s *Server) Close() error {
	if s.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.mongo.Disconnect(ctx)
	}
	return nil
}

// Run starts the server
func (s *Server) Run() error {
	s.log.Info("server listening", zap.String("address", s.cfg.Server.Address()))
	return s.router.Run(s.cfg.Server.Address())
}

func setupRouter(cfg *config.Config, log *zap.Logger, verifier identity.Verifier, repos *Repositories, h *Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.SetTrustedProxies(nil)

	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Timeout(time.Duration(cfg.RequestTimeoutSec) * time.Second))

	r.GET("/health", h.Health.Status)

	api := r.Group("/api")

	// Public routes
	api.POST("/users", h.User.Register)
	api.POST("/login-check", h.User.LoginCheck)

	// Protected routes require a provider-issued bearer token
	protected := api.Group("")
	protected.Use(middleware.RequireAuth(verifier))

	employee := middleware.RequireRole(repos.Users, model.RoleEmployee)
	hr := middleware.RequireRole(repos.Users, model.RoleHR)
	admin := middleware.RequireRole(repos.Users, model.RoleAdmin)

	// User routes
	users := protected.Group("/users")
	{
		users.GET("/me", h.User.Me)
		users.GET("/role", h.User.RoleInfo)
		users.GET("", admin, h.User.ListAll)
		users.GET("/verified", admin, h.User.ListVerified)
		users.GET("/employees", hr, h.User.ListEmployees)
		users.GET("/:id/details", hr, h.User.Details)
		users.PATCH("/:id/update-verification", hr, h.User.ToggleVerification)
		users.PATCH("/:id/make-hr", admin, h.User.MakeHR)
		users.PATCH("/:id/fire", admin, h.User.Fire)
	}

	// Work-sheet routes
	sheet := protected.Group("/work-sheet")
	{
		sheet.POST("", employee, h.Task.Create)
		sheet.GET("", hr, h.Task.ListAll)
		sheet.GET("/me", employee, h.Task.ListMine)
		sheet.PUT("/:id", employee, h.Task.Update)
		sheet.DELETE("/:id", employee, h.Task.Delete)
	}

	// Payment routes
	protected.POST("/payment", admin, h.Payment.Record)
	protected.GET("/payments", employee, h.Payment.History)
	protected.POST("/create-payment-intent", admin, h.Intent.Create)

	return r
}
