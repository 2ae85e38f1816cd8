// Package server assembles the reference reservation service: the HTTP
// contract the client books against, backed by a pluggable store.
package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pari08yadav/train-ticket-booking/internal/server/handlers"
	"github.com/pari08yadav/train-ticket-booking/internal/server/middleware"
	"github.com/pari08yadav/train-ticket-booking/internal/server/store"
)

// Config carries router-level settings.
type Config struct {
	Secret         []byte
	TokenTTL       time.Duration
	AllowedOrigins []string
}

// NewRouter builds the gin engine with the full route table.
func NewRouter(cfg Config, st store.Store) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "Accept"}
	r.Use(cors.New(corsCfg))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	h := handlers.Handler{Store: st, Secret: cfg.Secret, TokenTTL: cfg.TokenTTL}

	api := r.Group("/api")
	{
		api.GET("/health", handlers.Health)
		api.POST("/signup/", h.Signup)
		api.POST("/login/", h.Login)

		authed := api.Group("")
		authed.Use(middleware.RequireAuth(cfg.Secret))
		authed.GET("/search/tickets/", h.SearchTickets)
		authed.POST("/book/ticket/", h.BookTicket)
		authed.POST("/add/fund/", h.AddFund)
		authed.GET("/check/balance/", h.CheckBalance)
	}

	return r
}
