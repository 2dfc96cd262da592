package router

import (
	"time"

	"github.com/digital-companion/companion/internal/handlers"
	"github.com/digital-companion/companion/internal/middleware"
	"github.com/digital-companion/companion/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/status", handlers.Status)

		auth := api.Group("/auth")
		{
			auth.POST("/signup", handlers.Signup)
			auth.POST("/login", handlers.Login)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		reminders := api.Group("/reminders", middleware.AuthMiddleware())
		{
			reminders.GET("", handlers.ListReminders)
			reminders.POST("", handlers.CreateReminder)
			reminders.PUT("/:id", handlers.UpdateReminder)
			reminders.PATCH("/:id", handlers.UpdateReminder)
			reminders.PATCH("/:id/toggle", handlers.ToggleReminder)
			reminders.DELETE("/:id", handlers.DeleteReminder)
		}

		health := api.Group("/health", middleware.AuthMiddleware())
		{
			health.GET("", handlers.ListHealthRecords)
			health.POST("", handlers.CreateHealthRecord)
			health.PATCH("/:id", handlers.UpdateHealthRecord)
			health.DELETE("/:id", handlers.DeleteHealthRecord)
		}

		assistant := api.Group("/assistant", middleware.AuthMiddleware())
		{
			assistant.POST("/message", handlers.AssistantMessage)
			assistant.POST("/speech", handlers.AssistantSpeech)
			assistant.GET("/history", handlers.ListAssistantHistory)
			assistant.DELETE("/history/:id", handlers.DeleteAssistantExchange)
			assistant.GET("/ws", handlers.AssistantWebSocket)
		}
	}

	return r
}
