package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"betternotes/internal/domain"
)

type navigationRequest struct {
	From string `json:"from"`
	To   string `json:"to" binding:"required"`
}

func getPageStateHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, ok := deps.PageState.Get(c.Request.Context(), sessionID(c))
		if !ok {
			c.JSON(http.StatusOK, gin.H{"state": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": state})
	}
}

func savePageStateHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var state domain.PageState
		if err := c.ShouldBindJSON(&state); err != nil {
			jsonError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		deps.PageState.Save(c.Request.Context(), sessionID(c), state)
		c.Status(http.StatusNoContent)
	}
}

func clearPageStateHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		deps.PageState.Clear(c.Request.Context(), sessionID(c))
		c.Status(http.StatusNoContent)
	}
}

// navigationHandler applies the restoration guard. On a qualifying return
// from a detail view to the listing it hands the saved state out exactly
// once; anything else discards it.
func navigationHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req navigationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			jsonError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		state, preserved := deps.PageState.HandleNavigation(c.Request.Context(), sessionID(c), req.From, req.To)
		if !preserved {
			c.JSON(http.StatusOK, gin.H{"preserved": false, "state": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"preserved": true, "state": state})
	}
}
