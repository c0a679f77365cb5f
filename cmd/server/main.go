package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ImArijitBasu/vehicle-rental-backend/internal/config"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/handler"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/logger"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/middleware"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/policy"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/repository"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/service"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}
	debug := appEnv == "development"

	zlog, err := logger.New(appEnv)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// --- Configuration ---
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		zlog.Fatalw("Failed to load DB config", "error", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		zlog.Fatal("JWT_SECRET_KEY not set in environment")
	}
	jwtExpHours, err := strconv.ParseInt(os.Getenv("JWT_EXPIRATION_HOURS"), 10, 64)
	if err != nil || jwtExpHours <= 0 {
		jwtExpHours = 24
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	sweepSchedule := os.Getenv("SWEEP_SCHEDULE")
	if sweepSchedule == "" {
		sweepSchedule = "@hourly"
	}

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(context.Background(), dbCfg)
	if err != nil {
		zlog.Fatalw("Failed to connect to database", "error", err)
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(context.Background(), dbPool); err != nil {
		zlog.Fatalw("Failed to auto-migrate database", "error", err)
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(jwtSecret, jwtExpHours)

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	vehicleRepo := repository.NewVehicleRepository(dbPool)
	bookingRepo := repository.NewBookingRepository(dbPool)

	// --- Policy Engine ---
	policies := policy.NewEngine(bookingRepo)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, jwtUtil)
	userService := service.NewUserService(userRepo, bookingRepo)
	vehicleService := service.NewVehicleService(vehicleRepo, bookingRepo)
	bookingService := service.NewBookingService(bookingRepo, userRepo, policies)

	// --- Initialize Handlers ---
	authHandler := handler.NewAuthHandler(authService, zlog, debug)
	userHandler := handler.NewUserHandler(userService, zlog, debug)
	vehicleHandler := handler.NewVehicleHandler(vehicleService, zlog, debug)
	bookingHandler := handler.NewBookingHandler(bookingService, zlog, debug)

	// --- Overdue Booking Sweep Job ---
	sweeper := cron.New()
	if _, err := sweeper.AddFunc(sweepSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		swept, err := bookingService.SweepOverdue(ctx)
		if err != nil {
			zlog.Errorw("Overdue booking sweep failed", "error", err)
			return
		}
		if swept > 0 {
			zlog.Infow("Marked overdue bookings as returned", "count", swept)
		}
	}); err != nil {
		zlog.Fatalw("Failed to schedule booking sweep", "schedule", sweepSchedule, "error", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	// --- Setup Gin Router ---
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())

	// Simple CORS middleware (allow all for development)
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// --- Initialize Middlewares ---
	jwtAuthMW := middleware.JWTAuthMiddleware(jwtUtil)
	adminMW := middleware.AdminMiddleware()
	userPolicyMW := middleware.Authorize(policies, policy.ResourceUser)
	bookingPolicyMW := middleware.Authorize(policies, policy.ResourceBooking)

	// --- Register Routes ---
	api := router.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/signin", authHandler.Signin)
	}

	users := api.Group("/users", jwtAuthMW)
	{
		users.GET("", adminMW, userHandler.List)
		users.GET("/:userId", userPolicyMW, userHandler.Get)
		users.PUT("/:userId", userPolicyMW, userHandler.Update)
		users.DELETE("/:userId", userPolicyMW, userHandler.Delete)
	}

	vehicles := api.Group("/vehicles")
	{
		vehicles.GET("", vehicleHandler.List)
		vehicles.GET("/:vehicleId", vehicleHandler.Get)
		vehicles.POST("", jwtAuthMW, adminMW, vehicleHandler.Create)
		vehicles.PUT("/:vehicleId", jwtAuthMW, adminMW, vehicleHandler.Update)
		vehicles.DELETE("/:vehicleId", jwtAuthMW, adminMW, vehicleHandler.Delete)
	}

	bookings := api.Group("/bookings", jwtAuthMW)
	{
		bookings.POST("", bookingPolicyMW, bookingHandler.Create)
		bookings.GET("", bookingPolicyMW, bookingHandler.List)
		bookings.GET("/:bookingId", bookingPolicyMW, bookingHandler.Get)
		bookings.PUT("/:bookingId", bookingPolicyMW, bookingHandler.UpdateStatus)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := dbPool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + serverPort,
		Handler: router,
	}

	go func() {
		zlog.Infow("Server starting", "port", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatalw("listen failed", "error", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatalw("Server forced to shutdown", "error", err)
	}

	zlog.Info("Server exiting")
}
