package routes

import (
	"context"
	"log"
	"os"
	"strconv"

	_ "agendaexames_billing/docs" // This will be auto-generated
	"agendaexames_billing/internal/adapter/http/handlers"
	"agendaexames_billing/internal/adapter/http/middleware"
	repository2 "agendaexames_billing/internal/adapter/persistence/repository"
	"agendaexames_billing/internal/infrastructure/database"
	"agendaexames_billing/internal/infrastructure/gateway"
	"agendaexames_billing/internal/infrastructure/telemetry"
	"agendaexames_billing/internal/usecase"
	"agendaexames_billing/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

var router = gin.New()

const PORT = 8080

// Run will start the server
func Run() {
	shutdown, err := telemetry.Setup(context.Background())
	if err != nil {
		log.Printf("[routes] telemetry not configured: %v", err)
	} else {
		defer shutdown(context.Background())
	}

	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	if err := router.Run(":" + strconv.Itoa(PORT)); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	recordRepo := repository2.NewPaymentRecordDynamoRepository(ddb)

	var paymentGateway interfaces.IPaymentGateway
	asaas, err := gateway.NewAsaasClient(os.Getenv("ASAAS_API_KEY"), os.Getenv("ASAAS_BASE_URL"))
	if err != nil {
		log.Printf("Asaas gateway not configured: %v", err)
	} else {
		paymentGateway = asaas
	}

	checkoutUseCase := usecase.NewCheckoutUseCase(paymentGateway, recordRepo)

	checkoutHandler := handlers.NewCheckoutHandler(checkoutUseCase)
	planHandler := handlers.NewPlanHandler()
	recordHandler := handlers.NewPaymentRecordHandler(recordRepo)

	authSecret := []byte(os.Getenv("AUTH_JWT_SECRET"))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addCheckoutRoutes(v1, authSecret, checkoutHandler, planHandler, recordHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
	router.Use(otelgin.Middleware("agendaexames-billing"))
	router.Use(middleware.CORS())
}
