package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"skycart-api/internal/config"
	"skycart-api/internal/controller"
	"skycart-api/internal/dto"
	"skycart-api/internal/middleware"
	"skycart-api/internal/rabbit"
	"skycart-api/internal/repository"
	"skycart-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// MongoDB connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal(err)
	}
	db := client.Database(cfg.MongoDBName)

	// Repositories
	orderRepo := repository.NewMongoOrderRepository(db)
	productRepo := repository.NewMongoProductRepository(db)
	userRepo := repository.NewMongoUserRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("creating indexes: %v", err)
	}

	// RabbitMQ: order event publishing is best-effort, the API still works
	// without a broker.
	var events service.EventPublisher
	if conn, err := amqp091.Dial(cfg.RabbitURL); err != nil {
		log.Printf("RabbitMQ unavailable, order events disabled: %v", err)
	} else {
		ch, err := conn.Channel()
		if err != nil {
			log.Fatalf("opening RabbitMQ channel: %v", err)
		}
		events, err = rabbit.NewPublisher(ch)
		if err != nil {
			log.Fatalf("declaring exchanges: %v", err)
		}
	}

	// Payment gateway
	var gateway service.PaymentGateway
	if cfg.PaymentURL != "" {
		gateway = service.NewGatewayClient(cfg.PaymentURL, cfg.PaymentAPIKey)
	} else {
		log.Println("PAYMENT_URL not set, using sandbox payment gateway")
		gateway = service.SandboxGateway{}
	}

	// Services
	orderService := service.NewOrderService(orderRepo, productRepo, events)
	productService := service.NewProductService(productRepo)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	userService := service.NewUserService(userRepo)
	paymentService := service.NewPaymentService(gateway)

	// Controllers
	orderCtl := controller.NewOrderController(orderService, cfg.DefaultPageSize, cfg.MaxPageSize)
	productCtl := controller.NewProductController(productService, cfg.DefaultPageSize, cfg.MaxPageSize)
	authCtl := controller.NewAuthController(authService)
	userCtl := controller.NewUserController(userService, authService, cfg.DefaultPageSize, cfg.MaxPageSize)
	paymentCtl := controller.NewPaymentController(paymentService)

	// Struct-level request validations
	if v, ok := binding.Validator.Engine().(*validatorv10.Validate); ok {
		dto.RegisterValidations(v)
	}

	// Router
	r := gin.Default()
	r.Use(middleware.RequestID())

	api := r.Group("/api/v1")

	// Public routes
	api.POST("/auth/register", authCtl.Register)
	api.POST("/auth/login", authCtl.Login)
	api.POST("/auth/password/forgot", authCtl.ForgotPassword)
	api.POST("/auth/password/reset", authCtl.ResetPassword)
	api.GET("/products", productCtl.List)
	api.GET("/products/:productId", productCtl.Get)

	// Token-protected routes
	auth := api.Group("/")
	auth.Use(middleware.Auth(authService))

	auth.GET("/users/me", userCtl.Me)
	auth.PUT("/users/me", userCtl.UpdateMe)
	auth.PUT("/users/me/password", userCtl.ChangePassword)

	auth.POST("/orders/new", orderCtl.Create)
	auth.GET("/orders/me", orderCtl.GetMine)
	auth.GET("/orders/:orderId", orderCtl.Get)
	auth.DELETE("/orders/:orderId/cancel", orderCtl.Cancel)

	auth.PUT("/products/:productId/reviews", productCtl.AddReview)
	auth.DELETE("/products/:productId/reviews", productCtl.DeleteReview)

	auth.POST("/payments/process", paymentCtl.CreateIntent)

	// Admin routes
	admin := auth.Group("/admin")
	admin.Use(middleware.AdminOnly())

	admin.GET("/orders", orderCtl.GetAll)
	admin.GET("/orders/:orderId", orderCtl.AdminGet)
	admin.PUT("/orders/:orderId", orderCtl.UpdateStatus)
	admin.PUT("/orders/:orderId/deliver", orderCtl.MarkDelivered)
	admin.GET("/stats", orderCtl.SalesStats)
	admin.GET("/stats/daily", orderCtl.DailySales)

	admin.POST("/products", productCtl.Create)
	admin.PUT("/products/:productId", productCtl.Update)
	admin.DELETE("/products/:productId", productCtl.Delete)

	admin.GET("/users", userCtl.List)
	admin.PUT("/users/:userId/role", userCtl.UpdateRole)
	admin.DELETE("/users/:userId", userCtl.Delete)

	log.Printf("SkyCart API listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
