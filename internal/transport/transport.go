package transport

import (
	"time"

	"github.com/dklimov443/carminder/internal/transport/middleware"
	"github.com/gin-gonic/gin"
)

func InitRoutes(userHandler *UserHandler, carHandler *CarHandler, recordHandler *RecordHandler) *gin.Engine {

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30 * time.Second))

	// API routes
	api := router.Group("/api/v1")
	{
		// User routes
		users := api.Group("/users")
		{
			users.POST("/register", userHandler.RegisterUser)
			users.GET("", userHandler.GetAllUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.PUT("/:id/reminders", userHandler.UpdateReminderSettings)
			users.DELETE("/:id", userHandler.DeleteUser)
			users.GET("/:id/cars", carHandler.GetUserCars)
			users.GET("/:id/records", recordHandler.GetUserRecords)
		}

		// Car routes
		cars := api.Group("/cars")
		{
			cars.POST("", carHandler.AddCar)
			cars.GET("/:id", carHandler.GetCar)
			cars.PUT("/:id", carHandler.UpdateCar)
			cars.DELETE("/:id", carHandler.DeleteCar)
			cars.GET("/:id/records", recordHandler.GetCarRecords)
		}

		// Service record routes
		records := api.Group("/records")
		{
			records.POST("", recordHandler.AddRecord)
			records.GET("/:id", recordHandler.GetRecord)
			records.PUT("/:id", recordHandler.UpdateRecord)
			records.DELETE("/:id", recordHandler.DeleteRecord)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return router
}
