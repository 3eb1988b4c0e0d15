// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/instapay/ledger/internal/accountrepo"
	"github.com/instapay/ledger/internal/eventpub"
	"github.com/instapay/ledger/internal/ledgerdelivery"
	"github.com/instapay/ledger/internal/ledgerservice"
	"github.com/instapay/ledger/internal/middleware"
	"github.com/instapay/ledger/internal/recordrepo"
	"github.com/instapay/ledger/pkg/configpkg"
)

// Server holds the db connection, the handlers router and the configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated stores, engine and routes.
// A nil conn selects the in-memory stores.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	var (
		accountRepo ledgerservice.AccountRepo
		recordRepo  ledgerservice.RecordRepo
	)

	if conn != nil {
		accountRepo = accountrepo.NewRepoPGS(conn)
		recordRepo = recordrepo.NewRepoPGS(conn)
	} else {
		accountRepo = accountrepo.NewRepoMem()
		recordRepo = recordrepo.NewRepoMem()
	}

	var publisher eventpub.Publisher = eventpub.NoopPublisher{}
	if brokers := config.Brokers(); len(brokers) > 0 {
		publisher = eventpub.NewKafkaPublisher(brokers)
	}

	ledgerService := ledgerservice.New(accountRepo, recordRepo, publisher).
		WithLockWaitBudget(config.LockWaitBudget).
		WithAppendRetry(config.LogAppendRetry)

	ledgerHandler := ledgerdelivery.NewHandler(ledgerService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/accounts", ledgerHandler.CreateAccount)

	principalRoutes := engine.Group("/").Use(middleware.Principal())

	principalRoutes.POST("/deposits", ledgerHandler.Deposit)
	principalRoutes.POST("/withdrawals", ledgerHandler.Withdraw)
	principalRoutes.POST("/transfers", ledgerHandler.Transfer)
	principalRoutes.GET("/balance", ledgerHandler.GetBalance)
	principalRoutes.GET("/history", ledgerHandler.GetHistory)

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
