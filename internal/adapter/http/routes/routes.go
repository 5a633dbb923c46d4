package routes

import (
	_ "cargoflow/docs" // This will be auto-generated
	"cargoflow/internal/adapter/http/handlers"
	repository2 "cargoflow/internal/adapter/persistence/repository"
	"cargoflow/internal/infrastructure/database"
	"cargoflow/internal/usecase"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	orderRepo := repository2.NewOrderDynamoRepository(ddb)

	orderUseCase := usecase.NewOrderUseCase(orderRepo, nil, nil)

	estimateHandler := handlers.NewEstimateHandler(orderUseCase)
	orderHandler := handlers.NewOrderHandler(orderUseCase)
	trackingHandler := handlers.NewTrackingHandler(orderUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addShippingRoutes(v1, estimateHandler, orderHandler, trackingHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
