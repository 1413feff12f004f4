// Package router builds the echo instance: middleware order and routes.
package router

import (
	"net/http"

	"github.com/deppfellow/valeria-photo/internal/handler"
	"github.com/deppfellow/valeria-photo/internal/middleware"
	"github.com/deppfellow/valeria-photo/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter wires middleware and routes.
//
// Order matters: the request id must exist before the transaction and the
// request logger, and the context logger before anything that logs.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	mw := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = mw.Global.GlobalErrorHandler
	router.Renderer = handler.NewRenderer()

	router.Use(
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
		mw.Global.Secure(),
		mw.Global.CORS(),
		mw.Global.BodyLimit(),
	)

	registerSystemRoutes(router, h)

	session := mw.Session.Attach()

	router.GET("/", h.Page.Show, session)
	router.POST("/", h.Page.Submit, session)

	v1 := router.Group("/api/v1", session)
	v1.GET("/session/token", handler.Handle(
		h.Session.Handler,
		h.Session.GetToken,
		http.StatusOK,
		handler.NewTokenRequest,
	))
	v1.POST("/bookings", handler.Handle(
		h.Booking.Handler,
		h.Booking.CreateBooking,
		http.StatusAccepted,
		handler.NewSubmission,
	))

	return router
}
