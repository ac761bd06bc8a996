package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/furnirent/internal/domain/model"
	"github.com/polkiloo/furnirent/internal/server/http/handlers"
	"github.com/polkiloo/furnirent/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.RentalFacade, logger *slog.Logger, callbackSecret string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	productHandler := handlers.NewProductHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)

	api := engine.Group("/api")
	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)
	api.POST("/payments/callback", middleware.GatewaySignature(callbackSecret), paymentHandler.Callback)

	private := api.Group("")
	private.Use(middleware.AuthRequired(facade))
	private.GET("/user/payments/pending", paymentHandler.Pending)

	admin := private.Group("/admin", middleware.RoleRequired(model.RoleAdmin))
	admin.POST("/products", productHandler.Create)

	orders := private.Group("/orders")
	orders.POST("", orderHandler.Place)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.PUT("/:id/lines", orderHandler.ReplaceLines)
	orders.PUT("/:id/schedule", orderHandler.Reschedule)
	orders.POST("/:id/transport/proposals", orderHandler.Propose)
	orders.POST("/:id/transport/accept", orderHandler.Accept)
	orders.POST("/:id/transport/reject", orderHandler.Reject)
	orders.POST("/:id/cancel", orderHandler.Cancel)
	orders.POST("/:id/payments", paymentHandler.Initiate)
	orders.GET("/:id/payments", paymentHandler.List)

	staff := orders.Group("", middleware.RoleRequired(model.RoleAdmin))
	staff.POST("/:id/confirm", orderHandler.Confirm)
	staff.POST("/:id/start", orderHandler.Start)
	staff.POST("/:id/complete", orderHandler.Complete)

	return engine
}
