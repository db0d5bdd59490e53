package router

import (
	"log"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/linkup-app/feed-engine/internal/auth"
	"github.com/linkup-app/feed-engine/internal/engine"
	"github.com/linkup-app/feed-engine/internal/handlers"
	"github.com/linkup-app/feed-engine/internal/media"
	"github.com/linkup-app/feed-engine/internal/middleware"
	"github.com/linkup-app/feed-engine/internal/models"
	"github.com/linkup-app/feed-engine/internal/repositories"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *fbauth.Client, storageBaseURL string) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Like{},
		&models.Comment{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize repositories (the remote store surface) ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database("linkup"))
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	// --- Build the engine ---
	dispatcher := engine.NewNotificationDispatcher(notificationRepo)
	feedStore := engine.NewFeedStore(postRepo, userRepo)
	likeLedger := engine.NewLikeLedger(likeRepo, dispatcher)
	session := engine.NewPostDetailSession(postRepo, userRepo, commentRepo, dispatcher)
	mediaResolver := media.NewResolver(storageBaseURL)

	// The like set is loaded once at startup; toggles keep it current from
	// here on. A failure here is retried lazily by the next restart, the
	// feed just shows zero counts meanwhile.
	if err := likeLedger.LoadAll(); err != nil {
		log.Printf("Initial like fetch failed: %v", err)
	}

	// --- Protected routes ---
	api := e.Group("/api/v1")
	provider := auth.NewFirebaseProvider(firebaseAuthClient, userRepo)
	api.Use(middleware.AuthMiddleware(provider))
	log.Println("Firebase authentication middleware applied to /api/v1 group.")

	feedHandler := handlers.NewFeedHandler(feedStore, likeLedger, mediaResolver, postRepo)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	likeHandler := handlers.NewLikeHandler(likeLedger, postRepo)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	sessionHandler := handlers.NewSessionHandler(session, mediaResolver)
	sessionHandler.RegisterSessionRoutes(api)
	log.Println("Session routes configured.")

	log.Println("All routes configured.")
}
