package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"monsavonvert/internal/domain"
	cartsvc "monsavonvert/internal/service/cart"
	checkoutsvc "monsavonvert/internal/service/checkout"
)

type cartResponse struct {
	Items         []domain.CartItem `json:"items"`
	ItemCount     int               `json:"itemCount"`
	SubtotalCents int64             `json:"subtotalCents"`
}

func toCartResponse(cart domain.Cart) cartResponse {
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return cartResponse{
		Items:         items,
		ItemCount:     cart.ItemCount(),
		SubtotalCents: checkoutsvc.SubtotalCents(cart),
	}
}

func getCartHandler(carts *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := carts.Load(c.Request.Context(), sessionID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "load cart failed"})
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func addCartItemHandler(carts *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item domain.CartItem
		if err := c.ShouldBindJSON(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		cart, err := carts.Add(c.Request.Context(), sessionID(c), item)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func setCartQuantityHandler(carts *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Quantity *int `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || body.Quantity == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity required"})
			return
		}
		cart, err := carts.SetQuantity(c.Request.Context(), sessionID(c), c.Param("id"), *body.Quantity)
		if err != nil {
			status := http.StatusBadRequest
			if err == domain.ErrNotFound {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func clearCartHandler(carts *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := carts.Clear(c.Request.Context(), sessionID(c)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "clear cart failed"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
