package server

import (
	"net/http"

	"github.com/DevSlashRichie/coinme/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Services - зависимости HTTP-слоя
type Services struct {
	Loans        *service.LoanService
	Securities   *service.SecurityService
	Transactions *service.TransactionService
}

// SetupRouter создает gin.Engine со всеми маршрутами
func SetupRouter(serviceName string, svc Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", HeaderUserID, HeaderRequestID},
		ExposeHeaders:   []string{"Content-Length", HeaderRequestID},
	}))
	r.Use(otelgin.Middleware(serviceName))
	r.Use(AttachRequestID())
	r.Use(AccessLog())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Pong!"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	loans := &loanHandler{svc: svc.Loans}
	lg := r.Group("/loans")
	lg.POST("", loans.create)
	lg.GET("/:loanId", loans.get)
	lg.GET("/:loanId/schedule", loans.schedule)
	lg.GET("/borrower/:borrowerType/:borrowerId", loans.byBorrower)
	lg.POST("/:loanId/payment", loans.payment)
	lg.PATCH("/:loanId/status", loans.status)

	securities := &securityHandler{svc: svc.Securities}
	sg := r.Group("/securities")
	sg.POST("", securities.create)
	sg.GET("/:securityId", securities.get)
	sg.GET("/owner/:ownerType/:ownerId/securities", securities.byOwner)
	sg.PATCH("/:securityId/status", securities.status)
	sg.GET("/:securityId/earnings", securities.earnings)

	txs := &transactionHandler{svc: svc.Transactions}
	tg := r.Group("/transactions")
	tg.POST("", txs.create)
	tg.GET("/:transactionId", txs.get)
	tg.GET("/creator/:creatorId", txs.byCreator)
	tg.GET("/owner/:ownerType/:ownerId/transactions", txs.byOwner)
	tg.GET("/owner/:ownerType/:ownerId/balance", txs.balance)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})
	return r
}
