package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"betternotes/internal/imageurl"
	"betternotes/internal/pagestate"
	cartsvc "betternotes/internal/service/cart"
	catalogsvc "betternotes/internal/service/catalog"
	checkoutsvc "betternotes/internal/service/checkout"
	discountsvc "betternotes/internal/service/discount"
)

// Deps carries the wired services for route handlers.
type Deps struct {
	CatalogSvc     *catalogsvc.Service
	CartSvc        *cartsvc.Service
	DiscountSvc    *discountsvc.Service
	CheckoutSvc    *checkoutsvc.Service
	PageState      *pagestate.Tracker
	Images         *imageurl.Builder
	AllowedOrigins []string
}

const sessionCookie = "bn_session"

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(deps.AllowedOrigins) == 1 && deps.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = deps.AllowedOrigins
	}
	corsCfg.AllowCredentials = !corsCfg.AllowAllOrigins
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	api.Use(sessionMiddleware())

	api.GET("/notes", listNotesHandler(deps))
	api.GET("/notes/featured", featuredNotesHandler(deps))
	api.GET("/notes/:slug", noteBySlugHandler(deps))
	api.GET("/subjects", subjectsHandler(deps))
	api.GET("/years", yearsHandler(deps))
	api.GET("/slideshow", slideshowHandler(deps))
	api.GET("/discounts", discountsHandler(deps))

	api.GET("/cart", getCartHandler(deps))
	api.POST("/cart/items", addCartItemHandler(deps))
	api.PATCH("/cart/items/:noteId", updateCartItemHandler(deps))
	api.DELETE("/cart/items/:noteId", removeCartItemHandler(deps))
	api.DELETE("/cart", clearCartHandler(deps))
	api.POST("/cart/discount", applyDiscountHandler(deps))
	api.DELETE("/cart/discount", removeDiscountHandler(deps))

	api.GET("/checkout/offers", offersHandler(deps))
	api.POST("/checkout/order", placeOrderHandler(deps))

	api.GET("/page-state", getPageStateHandler(deps))
	api.PUT("/page-state", savePageStateHandler(deps))
	api.DELETE("/page-state", clearPageStateHandler(deps))
	api.POST("/navigation", navigationHandler(deps))

	return router
}

// sessionMiddleware assigns an anonymous session ID cookie on first contact;
// the cart and page state are keyed by it.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(sessionCookie)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(sessionCookie, sid, 0, "/", "", false, true)
		}
		c.Set(sessionCookie, sid)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	if v, ok := c.Get(sessionCookie); ok {
		if sid, ok := v.(string); ok {
			return sid
		}
	}
	return ""
}

func jsonError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}
