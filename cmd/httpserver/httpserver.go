// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/account-api/internal/accountdelivery"
	"github.com/go-petr/account-api/internal/accountrepo"
	"github.com/go-petr/account-api/internal/accountservice"
	"github.com/go-petr/account-api/internal/middleware"
	"github.com/go-petr/account-api/internal/systemdelivery"
	"github.com/go-petr/account-api/pkg/configpkg"
)

const (
	serviceName    = "Account REST API Service"
	serviceVersion = "1.0.0"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	accountRepo := accountrepo.NewRepoPGS(conn)
	accountService := accountservice.New(accountRepo)
	accountHandler := accountdelivery.NewHandler(accountService)
	systemHandler := systemdelivery.NewHandler(serviceName, serviceVersion)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())
	engine.Use(middleware.SecureHeaders(config.ForceHTTPS))

	engine.GET("/", systemHandler.Index)
	engine.GET("/health", systemHandler.Health)

	engine.GET("/accounts", accountHandler.List)
	engine.POST("/accounts", accountHandler.Create)
	engine.GET("/accounts/:id", accountHandler.Get)
	engine.PUT("/accounts/:id", accountHandler.Update)
	engine.DELETE("/accounts/:id", accountHandler.Delete)

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
