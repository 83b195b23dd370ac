package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fsession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"

	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/payments"
	"storefront/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "") // empty: local SQLite file
	viper.SetDefault("SQLITE_PATH", "app.db")
	viper.SetDefault("STRIPE_SECRET_KEY", "") // empty: payments disabled
	viper.SetDefault("PAYMENT_CURRENCY", "inr")
	viper.SetDefault("RABBITMQ_URL", "") // empty: order events disabled
	viper.AutomaticEnv()

	// --- Database ---
	db, err := database.Open(database.Config{
		DSN:        viper.GetString("DATABASE_DSN"),
		SQLitePath: viper.GetString("SQLITE_PATH"),
	})
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	seedProducts(productRepo)

	// --- Payment provider (optional) ---
	var provider payments.Provider
	if key := viper.GetString("STRIPE_SECRET_KEY"); key != "" {
		provider = payments.NewClient(payments.Config{
			SecretKey: key,
			Currency:  viper.GetString("PAYMENT_CURRENCY"),
		})
		log.Println("Payment provider configured; orders start as pending")
	} else {
		log.Println("No payment provider configured; orders are trusted as paid")
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	var events services.OrderEventPublisher
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: url})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		events = mqClient
	}

	// --- Services ---
	catalogService := services.NewCatalogService(productRepo)
	checkoutService := services.NewCheckoutService(orderRepo, productRepo, provider, events)
	accountService := services.NewAccountService(userRepo)

	// --- Sessions ---
	store := fsession.New(fsession.Config{
		Expiration:     24 * time.Hour,
		CookieHTTPOnly: true,
	})

	// --- Handlers ---
	catalogHandler := handlers.NewCatalogHandler(catalogService, store)
	cartHandler := handlers.NewCartHandler(catalogService, store)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, store)
	accountHandler := handlers.NewAccountHandler(accountService, checkoutService, store)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())
	app.Use(middleware.LoadUser(store, accountService))

	catalogHandler.RegisterRoutes(app)
	cartHandler.RegisterRoutes(app)
	checkoutHandler.RegisterRoutes(app)
	accountHandler.RegisterRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Order events consumer (optional) ---
	// A stand-in for downstream fulfillment: it only logs what it sees.
	if mqClient != nil {
		go func() {
			log.Println("Starting order events consumer...")
			handler := func(msg amqp.Delivery) error {
				log.Printf("Received order event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if err := mqClient.ConsumeOrderEvents(handler); err != nil {
				log.Printf("Failed to start order events consumer: %v", err)
			}
		}()
	}

	// --- Start HTTP server ---
	appPort := viper.GetString("APP_PORT")
	log.Printf("Starting server on %s", appPort)

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

// seedProducts populates the catalog on first start. Seeding is keyed
// by product name so restarts never duplicate rows.
func seedProducts(repo repositories.ProductRepository) {
	products := []models.Product{
		{Name: "Minimalist T-Shirt", Description: "Soft cotton tee in a clean, modern cut.", Price: 19.99, ImageURL: "https://images.pexels.com/photos/1002638/pexels-photo-1002638.jpeg", Category: "Fashion"},
		{Name: "Everyday Backpack", Description: "Versatile backpack with padded laptop sleeve.", Price: 59.99, ImageURL: "https://images.pexels.com/photos/374592/pexels-photo-374592.jpeg", Category: "Bags & Luggage"},
		{Name: "Wireless Headphones", Description: "Noise-cancelling over-ear headphones with long battery life.", Price: 129.99, ImageURL: "https://images.pexels.com/photos/3394664/pexels-photo-3394664.jpeg", Category: "Electronics"},
		{Name: "Android Smartphone", Description: "6.5\" display, 5G ready, all-day battery life.", Price: 249.99, ImageURL: "https://images.pexels.com/photos/6078121/pexels-photo-6078121.jpeg", Category: "Mobiles & Tablets"},
		{Name: "Ultrabook Laptop", Description: "Thin and light laptop for work and entertainment.", Price: 799.0, ImageURL: "https://images.pexels.com/photos/18105/pexels-photo.jpg", Category: "Laptops"},
		{Name: "Home Coffee Maker", Description: "Brew rich coffee at home with one-touch control.", Price: 89.99, ImageURL: "https://images.pexels.com/photos/302899/pexels-photo-302899.jpeg", Category: "Home & Kitchen"},
		{Name: "Yoga Mat Pro", Description: "Non-slip yoga mat with extra cushioning.", Price: 29.99, ImageURL: "https://images.pexels.com/photos/3823086/pexels-photo-3823086.jpeg", Category: "Sports & Fitness"},
		{Name: "Skincare Essentials Kit", Description: "Cleanser, toner and moisturizer for daily care.", Price: 39.99, ImageURL: "https://images.pexels.com/photos/3738364/pexels-photo-3738364.jpeg", Category: "Beauty & Personal Care"},
		{Name: "LED Desk Lamp", Description: "Adjustable desk lamp with warm and cool modes.", Price: 24.99, ImageURL: "https://images.pexels.com/photos/8132693/pexels-photo-8132693.jpeg", Category: "Home & Lighting"},
		{Name: "Bluetooth Speaker", Description: "Portable speaker with deep bass and 12h playtime.", Price: 49.99, ImageURL: "https://images.pexels.com/photos/63703/pexels-photo-63703.jpeg", Category: "Electronics"},
		{Name: "Running Shoes", Description: "Lightweight running shoes for everyday training.", Price: 64.99, ImageURL: "https://images.pexels.com/photos/2529148/pexels-photo-2529148.jpeg", Category: "Footwear"},
		{Name: "Study Chair", Description: "Ergonomic chair with lumbar support for long study hours.", Price: 119.0, ImageURL: "https://images.pexels.com/photos/6964079/pexels-photo-6964079.jpeg", Category: "Furniture"},
	}

	for i := range products {
		count, err := repo.CountByName(products[i].Name)
		if err != nil {
			log.Printf("Error checking seed product %s: %v", products[i].Name, err)
			continue
		}
		if count > 0 {
			continue
		}
		if err := repo.Create(&products[i]); err != nil {
			log.Printf("Error seeding product %s: %v", products[i].Name, err)
		}
	}
}
