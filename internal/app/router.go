// internal/app/router.go
package app

import (
	"carsales-service/internal/domain/message"
	"carsales-service/internal/domain/sale"
	authHandler "carsales-service/internal/handlers/auth"
	healthHandler "carsales-service/internal/handlers/health"
	imageHandler "carsales-service/internal/handlers/image"
	messageHandler "carsales-service/internal/handlers/message"
	partyHandler "carsales-service/internal/handlers/party"
	saleHandler "carsales-service/internal/handlers/sale"
	vehicleHandler "carsales-service/internal/handlers/vehicle"
	wsHandler "carsales-service/internal/handlers/websocket"
	"carsales-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	HealthHandler     *healthHandler.HealthHandler
	AuthHandler       *authHandler.AuthHandler
	CarHandler        *vehicleHandler.CarHandler
	MotorcycleHandler *vehicleHandler.MotorcycleHandler
	AddressHandler    *partyHandler.AddressHandler
	ClientHandler     *partyHandler.ClientHandler
	EmployeeHandler   *partyHandler.EmployeeHandler
	SaleHandler       *saleHandler.SaleHandler
	MessageHandler    *messageHandler.MessageHandler
	ImageHandler      *imageHandler.ImageHandler
	WSHandler         *wsHandler.WebSocketHandler
	AuthMiddleware    *middleware.AuthMiddleware
	LoginLimiter      gin.HandlerFunc
}

func SetupRouter(r *gin.Engine, h *Handlers, uploadDir string) {
	m := h.AuthMiddleware
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", h.HealthHandler.Check)

	// ==================== Static Uploads ====================
	r.Static("/static/uploads", uploadDir)

	// ==================== WebSocket ====================
	r.GET("/ws", m.Auth(), h.WSHandler.HandleConnection)
	api.GET("/ws/stats", m.Auth(), m.AdminOnly(), h.WSHandler.GetStats)

	// ==================== Auth ====================
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/login", h.LoginLimiter, h.AuthHandler.Login)
		authRoutes.POST("/logout", m.Auth(), h.AuthHandler.Logout)
		authRoutes.GET("/me", m.Auth(), h.AuthHandler.Me)
		authRoutes.PUT("/change-password", m.Auth(), h.AuthHandler.ChangePassword)
		authRoutes.POST("/tokens/cleanup", m.Auth(), m.AdminOnly(), h.AuthHandler.CleanupTokens)
	}

	// ==================== Users (admin) ====================
	users := api.Group("/users", m.Auth(), m.AdminOnly())
	{
		users.POST("", h.AuthHandler.Register)
		users.GET("", h.AuthHandler.ListUsers)
		users.PUT("/:id/activate", h.AuthHandler.ActivateUser)
		users.PUT("/:id/deactivate", h.AuthHandler.DeactivateUser)
	}

	// ==================== Vehicles ====================
	cars := api.Group("/cars", m.Auth())
	{
		cars.GET("", m.AdminOrVendor(), h.CarHandler.ListCars)
		cars.GET("/:id", m.AdminOrVendor(), h.CarHandler.GetCar)
		cars.POST("", m.AdminOnly(), h.CarHandler.CreateCar)
		cars.PUT("/:id", m.AdminOnly(), h.CarHandler.UpdateCar)
		cars.DELETE("/:id", m.AdminOnly(), h.CarHandler.DeleteCar)
		cars.PUT("/:id/activate", m.AdminOnly(), h.CarHandler.ActivateCar)
		cars.PUT("/:id/inactivate", m.AdminOnly(), h.CarHandler.InactivateCar)
	}

	motorcycles := api.Group("/motorcycles", m.Auth())
	{
		motorcycles.GET("", m.AdminOrVendor(), h.MotorcycleHandler.ListMotorcycles)
		motorcycles.GET("/:id", m.AdminOrVendor(), h.MotorcycleHandler.GetMotorcycle)
		motorcycles.POST("", m.AdminOnly(), h.MotorcycleHandler.CreateMotorcycle)
		motorcycles.PUT("/:id", m.AdminOnly(), h.MotorcycleHandler.UpdateMotorcycle)
		motorcycles.DELETE("/:id", m.AdminOnly(), h.MotorcycleHandler.DeleteMotorcycle)
		motorcycles.PUT("/:id/activate", m.AdminOnly(), h.MotorcycleHandler.ActivateMotorcycle)
		motorcycles.PUT("/:id/inactivate", m.AdminOnly(), h.MotorcycleHandler.InactivateMotorcycle)
	}

	// ==================== Parties ====================
	addresses := api.Group("/addresses", m.Auth(), m.AdminOnly())
	{
		addresses.POST("", h.AddressHandler.CreateAddress)
		addresses.GET("", h.AddressHandler.ListAddresses)
		addresses.GET("/:id", h.AddressHandler.GetAddress)
		addresses.PUT("/:id", h.AddressHandler.UpdateAddress)
		addresses.DELETE("/:id", h.AddressHandler.DeleteAddress)
	}

	clients := api.Group("/clients", m.Auth(), m.AdminOrVendor())
	{
		clients.POST("", h.ClientHandler.CreateClient)
		clients.GET("", h.ClientHandler.ListClients)
		clients.GET("/search", h.ClientHandler.SearchClients)
		clients.GET("/:id", h.ClientHandler.GetClient)
		clients.PUT("/:id", h.ClientHandler.UpdateClient)
		clients.DELETE("/:id", h.ClientHandler.DeleteClient)
	}

	employees := api.Group("/employees", m.Auth(), m.AdminOnly())
	{
		employees.POST("", h.EmployeeHandler.CreateEmployee)
		employees.GET("", h.EmployeeHandler.ListEmployees)
		employees.GET("/:id", h.EmployeeHandler.GetEmployee)
		employees.PUT("/:id", h.EmployeeHandler.UpdateEmployee)
		employees.PUT("/:id/status", h.EmployeeHandler.UpdateEmployeeStatus)
		employees.DELETE("/:id", h.EmployeeHandler.DeleteEmployee)
	}

	// ==================== Sales ====================
	sales := api.Group("/sales", m.Auth())
	{
		sales.GET("/statistics/summary", m.AdminOnly(), h.SaleHandler.Statistics)
		sales.DELETE("/:id", m.AdminOnly(), h.SaleHandler.DeleteSale)

		staff := sales.Group("", m.AdminOrVendor())
		staff.POST("", h.SaleHandler.CreateSale)
		staff.GET("", h.SaleHandler.ListSales)
		staff.GET("/:id", h.SaleHandler.GetSale)
		staff.PUT("/:id", h.SaleHandler.UpdateSale)
		staff.PUT("/:id/status", h.SaleHandler.UpdateSaleStatus)
		staff.PUT("/:id/confirm", h.SaleHandler.StatusShortcut(sale.StatusConfirmed))
		staff.PUT("/:id/pay", h.SaleHandler.StatusShortcut(sale.StatusPaid))
		staff.PUT("/:id/deliver", h.SaleHandler.StatusShortcut(sale.StatusDelivered))
		staff.PUT("/:id/cancel", h.SaleHandler.StatusShortcut(sale.StatusCancelled))
		staff.PUT("/:id/pending", h.SaleHandler.StatusShortcut(sale.StatusPending))
	}

	// ==================== Messages ====================
	api.POST("/messages", h.MessageHandler.CreateMessage)
	messages := api.Group("/messages", m.Auth(), m.AdminOrVendor())
	{
		messages.GET("", h.MessageHandler.ListMessages)
		messages.GET("/pending", h.MessageHandler.ListByStatus(message.StatusPending))
		messages.GET("/contact-initiated", h.MessageHandler.ListByStatus(message.StatusContactInitiated))
		messages.GET("/finished", h.MessageHandler.ListByStatus(message.StatusFinished))
		messages.GET("/cancelled", h.MessageHandler.ListByStatus(message.StatusCancelled))
		messages.GET("/:id", h.MessageHandler.GetMessage)
		messages.PUT("/:id", h.MessageHandler.UpdateMessage)
		messages.PUT("/:id/start-service", h.MessageHandler.StartService)
		messages.PUT("/:id/status", h.MessageHandler.UpdateStatus)
		messages.DELETE("/:id", h.MessageHandler.DeleteMessage)
	}

	// ==================== Images ====================
	images := api.Group("/images", m.Auth())
	{
		images.GET("/vehicle/:vehicle_id", m.AdminOrVendor(), h.ImageHandler.ListVehicleImages)
		images.GET("/vehicle/:vehicle_id/primary", m.AdminOrVendor(), h.ImageHandler.GetPrimaryImage)
		images.GET("/:id", m.AdminOrVendor(), h.ImageHandler.GetImage)
		images.POST("/:vehicle_type/:vehicle_id", m.AdminOnly(), h.ImageHandler.UploadImages)
		images.DELETE("/:id", m.AdminOnly(), h.ImageHandler.DeleteImage)
		images.PUT("/vehicle/:vehicle_id/primary/:image_id", m.AdminOnly(), h.ImageHandler.SetPrimaryImage)
		images.PUT("/vehicle/:vehicle_id/reorder", m.AdminOnly(), h.ImageHandler.ReorderImages)
	}
}
