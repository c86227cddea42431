package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/silverium/labelgen/api/handlers"
	appmw "github.com/silverium/labelgen/api/middleware"
	"github.com/silverium/labelgen/constant"
	appLogger "github.com/silverium/labelgen/infrastructure/logger"
)

// Router represents the application router
type Router struct {
	handler   *Handler
	wilayah   *handlers.WilayahHandler
	router    *chi.Mux
	jwtSecret string
}

// NewRouter creates a new router
func NewRouter(handler *Handler, wilayahHandler *handlers.WilayahHandler, jwtSecret string) *Router {
	r := chi.NewRouter()

	// Middleware setup
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(appmw.RequestLogger())

	return &Router{
		handler:   handler,
		wilayah:   wilayahHandler,
		router:    r,
		jwtSecret: jwtSecret,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() {
	appLogger.Info(constant.MsgSettingUpRoutes, appLogger.LoggerInfo{
		ContextFunction: constant.CtxRouter,
	})

	// Admin routes with bearer JWT auth
	auth := appmw.BearerAuth(r.jwtSecret)

	r.router.With(auth).Post(constant.RouteBatch, r.handler.GenerateBatch)
	r.router.With(auth).Get(constant.RoutePreview, r.handler.PreviewLabel)
	r.router.With(auth).Post(constant.RouteSheet, r.handler.GenerateSheet)
	r.router.With(auth).Get(constant.RouteBatchHistory, r.handler.History)

	r.router.With(auth).Get(constant.RouteWilayahState, r.wilayah.State)
	r.router.With(auth).Post(constant.RouteWilayahSelect, r.wilayah.Select)
	r.router.With(auth).Delete(constant.RouteWilayahReset, r.wilayah.Reset)

	// Healthcheck
	r.router.Get(constant.RouteHealthcheck, func(w http.ResponseWriter, req *http.Request) {
		appLogger.CtxDebug(req.Context(), constant.MsgHealthcheckRequest, appLogger.LoggerInfo{
			ContextFunction: constant.CtxRouter,
		})

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(constant.MsgHealthy))
	})
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
