package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"monsavonvert/internal/domain"
	checkoutsvc "monsavonvert/internal/service/checkout"
	"monsavonvert/internal/upstream"
)

func startCheckoutHandler(svc *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := svc.Start(c.Request.Context(), sessionID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "start checkout failed"})
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func checkoutStateHandler(svc *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := svc.State(c.Request.Context(), sessionID(c))
		if err != nil {
			respondCheckoutError(c, state, err)
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func setFieldHandler(svc *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Value string `json:"value"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		state, err := svc.SetField(c.Request.Context(), sessionID(c), c.Param("name"), body.Value)
		if err != nil {
			respondCheckoutError(c, state, err)
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func setTermsHandler(svc *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Accepted bool `json:"accepted"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		state, err := svc.SetTermsAccepted(c.Request.Context(), sessionID(c), body.Accepted)
		if err != nil {
			respondCheckoutError(c, state, err)
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func selectShippingHandler(svc *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Method string `json:"method"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		state, err := svc.SelectShipping(c.Request.Context(), sessionID(c), domain.ShippingMethod(body.Method))
		if err != nil {
			respondCheckoutError(c, state, err)
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func continueHandler(svc *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := svc.Continue(c.Request.Context(), sessionID(c))
		if err != nil {
			respondCheckoutError(c, state, err)
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func backHandler(svc *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := svc.Back(c.Request.Context(), sessionID(c))
		if err != nil {
			respondCheckoutError(c, state, err)
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func editHandler(svc *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Step int `json:"step"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		state, err := svc.Edit(c.Request.Context(), sessionID(c), domain.CheckoutStep(body.Step))
		if err != nil {
			respondCheckoutError(c, state, err)
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func payHandler(svc *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := svc.Pay(c.Request.Context(), sessionID(c))
		if err != nil {
			respondCheckoutError(c, checkoutsvc.State{}, err)
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

func abandonHandler(svc *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Abandon(sessionID(c)); err != nil {
			respondCheckoutError(c, checkoutsvc.State{}, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func dismissNoticeHandler(svc *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := svc.DismissNotice(c.Request.Context(), sessionID(c))
		if err != nil {
			respondCheckoutError(c, state, err)
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

// respondCheckoutError maps flow errors to HTTP statuses. Business blocks
// (invalid form, duplicate submit) keep the state in the body so the
// storefront can render the modal that was just set.
func respondCheckoutError(c *gin.Context, state checkoutsvc.State, err error) {
	var apiErr *upstream.APIError
	switch {
	case errors.Is(err, checkoutsvc.ErrNoActiveFlow):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, checkoutsvc.ErrFormInvalid):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "state": state})
	case errors.Is(err, checkoutsvc.ErrSubmitInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, checkoutsvc.ErrWrongStep),
		errors.Is(err, checkoutsvc.ErrUnknownField),
		errors.Is(err, checkoutsvc.ErrUnknownShippingMethod),
		errors.Is(err, checkoutsvc.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &apiErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "state": state})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
