package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authHandler *AuthHandler,
	clientHandler *ClientHandler,
	contractHandler *ContractHandler,
	scheduleHandler *ScheduleHandler,
	paymentHandler *PaymentHandler,
	templateHandler *TemplateHandler,
	dashboardHandler *DashboardHandler,
	jwtSecret string,
) *Router {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	// Protected
	auth := r.Group("/")
	auth.Use(AuthMiddleware(jwtSecret), MetricsMiddleware())
	{
		auth.GET("/clients", clientHandler.List)
		auth.POST("/clients", clientHandler.Create)
		auth.GET("/clients/:id", clientHandler.Get)
		auth.PUT("/clients/:id", clientHandler.Update)
		auth.DELETE("/clients/:id", clientHandler.Delete)

		auth.GET("/contracts", contractHandler.List)
		auth.POST("/contracts", contractHandler.Create)
		auth.GET("/contracts/:id", contractHandler.Get)
		auth.PUT("/contracts/:id", contractHandler.Update)
		auth.DELETE("/contracts/:id", contractHandler.Delete)
		auth.POST("/contracts/:id/cancel", contractHandler.Cancel)
		auth.GET("/contracts/:id/installments", contractHandler.Installments)
		auth.GET("/contracts/:id/schedule", contractHandler.Schedule)
		auth.GET("/contracts/:id/schedule/report", contractHandler.ScheduleReport)
		auth.GET("/contracts/:id/receipts", paymentHandler.ContractReceipts)

		auth.POST("/installments/:id/pay", paymentHandler.Pay)
		auth.GET("/receipts/:id", paymentHandler.Receipt)

		auth.GET("/schedules/:id", scheduleHandler.Get)
		auth.PUT("/schedules/:id/start-date", scheduleHandler.SetStartDate)
		auth.PUT("/schedules/:id/stages/:stageID", scheduleHandler.EditStage)
		auth.POST("/schedules/:id/stages/:stageID/complete", scheduleHandler.Complete)
		auth.DELETE("/schedules/:id/stages/:stageID/complete", scheduleHandler.Reopen)

		auth.GET("/dashboard", dashboardHandler.Summary)
		auth.GET("/notifications", dashboardHandler.Notifications)
		auth.POST("/notifications/:id/read", dashboardHandler.AckNotification)

		auth.GET("/templates", templateHandler.List)

		// Studio settings, admin only
		admin := auth.Group("/")
		admin.Use(RequireAdmin())
		{
			admin.POST("/templates", templateHandler.Create)
			admin.PUT("/templates/:id", templateHandler.Update)
			admin.DELETE("/templates/:id", templateHandler.Delete)
		}
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
