package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"ms-tickets/internal/config"
	"ms-tickets/internal/logger"
	"ms-tickets/internal/middleware"
	ticket_db "ms-tickets/internal/tickets/db"
	tickets "ms-tickets/internal/tickets/service"
	"ms-tickets/internal/tickets/ticket_api"
)

// openDatabase opens the store selected by the DSN: postgres URLs go through
// lib/pq, everything else is treated as a SQLite path.
func openDatabase(dsn string, log *logger.Logger) *bun.DB {
	var sqldb *sql.DB
	var err error
	var bunDB *bun.DB

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		sqldb, err = sql.Open("postgres", dsn)
		if err != nil {
			log.Fatal("DATABASE", fmt.Sprintf("Failed to open PostgreSQL: %v", err))
		}
		bunDB = bun.NewDB(sqldb, pgdialect.New())
	} else {
		sqldb, err = sql.Open(sqliteshim.ShimName, dsn)
		if err != nil {
			log.Fatal("DATABASE", fmt.Sprintf("Failed to open SQLite: %v", err))
		}
		bunDB = bun.NewDB(sqldb, sqlitedialect.New())
	}

	if err := sqldb.Ping(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to database: %v", err))
	}
	log.Info("DATABASE", "Database connection successful")

	return bunDB
}

// newRouter assembles the full HTTP surface: CORS, request logging, the
// liveness endpoint and the ticket routes.
func newRouter(handler *ticket_api.Handler, log *logger.Logger) chi.Router {
	r := chi.NewRouter()

	// Allows everything, credentials included. Not a production policy.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	r.Use(middleware.RequestLogger(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	handler.RegisterRoutes(r)

	return r
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	log.Info("APP", fmt.Sprintf("%s v%s - %s", cfg.App.Name, cfg.App.Version, cfg.App.Description))

	ctx := context.Background()
	bunDB := openDatabase(cfg.Database.DSN, log)
	defer bunDB.Close()

	ticketDB := &ticket_db.DB{Bun: bunDB}
	if err := ticketDB.CreateSchema(ctx); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to create schema: %v", err))
	}
	log.LogDatabase("CREATE", "tickets", "schema ensured")

	ticketService := tickets.NewTicketService(ticketDB)
	handler := ticket_api.NewHandler(ticketService, log)

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      newRouter(handler, log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("🚀 Ticket Service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server shutdown failed: %v", err))
	} else {
		log.Info("HTTP", "✅ Ticket Service shutdown complete")
	}
}
