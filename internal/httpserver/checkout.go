package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func offersHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		offer := deps.CheckoutSvc.CurrentOffer(c.Request.Context(), sessionID(c))
		if offer == nil {
			c.JSON(http.StatusOK, gin.H{"offer": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"offer": offer})
	}
}

func placeOrderHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := deps.CheckoutSvc.PlaceOrder(c.Request.Context(), sessionID(c))
		if err != nil {
			jsonError(c, http.StatusBadRequest, err.Error())
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
