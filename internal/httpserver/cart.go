package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"betternotes/internal/domain"
	discountsvc "betternotes/internal/service/discount"
)

type addItemRequest struct {
	NoteID string `json:"noteId"`
	Slug   string `json:"slug"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

type applyDiscountRequest struct {
	Code string `json:"code"`
}

type cartResponse struct {
	Lines                 []domain.CartLine `json:"lines"`
	ItemCount             int               `json:"itemCount"`
	SubtotalCents         int64             `json:"subtotalCents"`
	DiscountCode          string            `json:"discountCode,omitempty"`
	CouponDiscountCents   int64             `json:"couponDiscountCents"`
	QuantityDiscountCents int64             `json:"quantityDiscountCents"`
	TotalCents            int64             `json:"totalCents"`
}

func toCartResponse(cart domain.Cart) cartResponse {
	lines := cart.Lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return cartResponse{
		Lines:                 lines,
		ItemCount:             cart.ItemCount(),
		SubtotalCents:         cart.SubtotalCents,
		DiscountCode:          cart.DiscountCode,
		CouponDiscountCents:   cart.CouponDiscountCents,
		QuantityDiscountCents: cart.QuantityDiscountCents,
		TotalCents:            cart.TotalCents,
	}
}

func getCartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart := deps.CartSvc.Load(c.Request.Context(), sessionID(c))
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func addCartItemHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			jsonError(c, http.StatusBadRequest, "invalid request body")
			return
		}

		var (
			note *domain.Note
			err  error
		)
		switch {
		case strings.TrimSpace(req.NoteID) != "":
			note, err = deps.CatalogSvc.NoteByID(c.Request.Context(), req.NoteID)
		case strings.TrimSpace(req.Slug) != "":
			note, err = deps.CatalogSvc.NoteBySlug(c.Request.Context(), req.Slug)
		default:
			jsonError(c, http.StatusBadRequest, "noteId or slug required")
			return
		}
		if err != nil {
			jsonError(c, http.StatusNotFound, "note not found")
			return
		}

		cart, err := deps.CartSvc.Add(c.Request.Context(), sessionID(c), *note)
		if err != nil {
			jsonError(c, http.StatusInternalServerError, "could not update cart")
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func updateCartItemHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			jsonError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		cart, err := deps.CartSvc.SetQuantity(c.Request.Context(), sessionID(c), c.Param("noteId"), req.Quantity)
		if err != nil {
			jsonError(c, http.StatusInternalServerError, "could not update cart")
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func removeCartItemHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := deps.CartSvc.Remove(c.Request.Context(), sessionID(c), c.Param("noteId"))
		if err != nil {
			jsonError(c, http.StatusInternalServerError, "could not update cart")
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func clearCartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := deps.CartSvc.Clear(c.Request.Context(), sessionID(c))
		if err != nil {
			jsonError(c, http.StatusInternalServerError, "could not update cart")
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func applyDiscountHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req applyDiscountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			jsonError(c, http.StatusBadRequest, "invalid request body")
			return
		}

		code, pct, err := deps.DiscountSvc.Validate(c.Request.Context(), req.Code)
		if err != nil {
			if errors.Is(err, discountsvc.ErrInvalidCode) {
				jsonError(c, http.StatusBadRequest, "invalid discount code")
				return
			}
			jsonError(c, http.StatusInternalServerError, "could not validate discount code")
			return
		}

		cart, err := deps.CartSvc.ApplyCoupon(c.Request.Context(), sessionID(c), code, pct)
		if err != nil {
			jsonError(c, http.StatusInternalServerError, "could not update cart")
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func removeDiscountHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := deps.CartSvc.RemoveCoupon(c.Request.Context(), sessionID(c))
		if err != nil {
			jsonError(c, http.StatusInternalServerError, "could not update cart")
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}
