package httpserver

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cartsvc "monsavonvert/internal/service/cart"
	checkoutsvc "monsavonvert/internal/service/checkout"
)

// Deps carries the services the routes need.
type Deps struct {
	Carts    *cartsvc.Service
	Checkout *checkoutsvc.Service
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Content-Type", headerSessionID},
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	withSession := router.Group("/", sessionMiddleware())

	withSession.GET("/cart", getCartHandler(deps.Carts))
	withSession.POST("/cart/items", addCartItemHandler(deps.Carts))
	withSession.PUT("/cart/items/:id", setCartQuantityHandler(deps.Carts))
	withSession.DELETE("/cart", clearCartHandler(deps.Carts))

	withSession.POST("/checkout", startCheckoutHandler(deps.Checkout))
	withSession.GET("/checkout", checkoutStateHandler(deps.Checkout))
	withSession.PUT("/checkout/fields/:name", setFieldHandler(deps.Checkout))
	withSession.PUT("/checkout/terms", setTermsHandler(deps.Checkout))
	withSession.PUT("/checkout/shipping", selectShippingHandler(deps.Checkout))
	withSession.POST("/checkout/continue", continueHandler(deps.Checkout))
	withSession.POST("/checkout/back", backHandler(deps.Checkout))
	withSession.POST("/checkout/edit", editHandler(deps.Checkout))
	withSession.POST("/checkout/pay", payHandler(deps.Checkout))
	withSession.DELETE("/checkout", abandonHandler(deps.Checkout))
	withSession.DELETE("/checkout/notice", dismissNoticeHandler(deps.Checkout))

	return router
}
