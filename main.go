package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"warung/internal/handlers"
	"warung/internal/models"
	"warung/internal/repositories"
	"warung/internal/services"
	"warung/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	// Viper reads from environment variables with these defaults.
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "sqlite") // sqlite | postgres | memory
	viper.SetDefault("DB_DSN", "warung.db")
	viper.SetDefault("RABBITMQ_URL", "") // empty disables event publishing
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	dbDriver := viper.GetString("DB_DRIVER")
	dbDSN := viper.GetString("DB_DSN")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Initialize Repositories ---
	productRepo, userRepo, err := buildRepositories(dbDriver, dbDSN)
	if err != nil {
		log.Fatalf("Failed to initialize storage (%s): %v", dbDriver, err)
	}

	// --- Initialize RabbitMQ Client (optional) ---
	// Mutation events are best-effort; without a broker the services simply
	// skip publishing.
	var mqClient *rabbitmq.Client
	var events services.EventPublisher
	if rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		events = mqClient
	} else {
		log.Println("RABBITMQ_URL not set; mutation events disabled")
	}

	// --- Initialize Services ---
	productService := services.NewProductService(productRepo, events)
	userService := services.NewUserService(userRepo, events)

	// --- Initialize Handlers ---
	productHandler := handlers.NewProductHandler(productService)
	userHandler := handlers.NewUserHandler(userService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(requestid.New(requestid.Config{
		Generator: func() string { return uuid.New().String() },
	}))
	app.Use(logger.New()) // Request logger

	// --- API Routes ---
	productHandler.RegisterRoutes(app)
	userHandler.RegisterRoutes(app)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// Logs every mutation event; a real consumer would fan these out to
	// downstream systems.
	if mqClient != nil {
		log.Println("Starting RabbitMQ consumer for mutation events...")
		messageHandler := func(msg amqp.Delivery) error {
			log.Printf("Received mutation event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
			return nil // Return nil to acknowledge
		}
		if consumerErr := mqClient.ConsumeMutationEvents(messageHandler); consumerErr != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
		}
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// buildRepositories opens the configured backing store and returns both
// repositories. The memory driver keeps everything in-process, which is
// handy for local runs and matches what the tests use.
func buildRepositories(driver, dsn string) (repositories.ProductRepository, repositories.UserRepository, error) {
	if driver == "memory" {
		return repositories.NewMockProductRepository(), repositories.NewMockUserRepository(), nil
	}

	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	// TranslateError turns driver-specific unique violations into
	// gorm.ErrDuplicatedKey, which the repositories rely on.
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.User{}); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repositories.NewGORMProductRepository(db), repositories.NewGORMUserRepository(db), nil
}
