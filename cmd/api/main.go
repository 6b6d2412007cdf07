package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/wealthsim/persona-finance/internal/api/handlers"
	"github.com/wealthsim/persona-finance/internal/api/middleware"
	"github.com/wealthsim/persona-finance/internal/config"
	"github.com/wealthsim/persona-finance/internal/domain"
	"github.com/wealthsim/persona-finance/internal/logger"
	"github.com/wealthsim/persona-finance/internal/oracle"
	"github.com/wealthsim/persona-finance/internal/session"
	"github.com/wealthsim/persona-finance/internal/simulate"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.FromEnv()
	port := flag.String("port", cfg.Port, "HTTP server port (or set PORT env)")
	flag.Parse()

	log := logger.New()

	personas, err := config.LoadPersonas(cfg.PersonaConfigPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load persona configs")
	}

	simulators := make(map[string]session.SimulatorFunc, len(personas))
	for id, pc := range personas {
		pc := pc
		simulators[id] = func(months int) *domain.FinancialData {
			return simulate.Run(pc, months)
		}
	}

	store := session.NewStore(simulators)
	exec := session.NewExecutor(logger.WithComponent(log, "executor"))

	var oracleClient *oracle.Client
	if cfg.OracleEnabled() {
		oracleClient, err = oracle.NewClient(context.Background(), logger.WithComponent(log, "oracle"))
		if err != nil {
			log.Warn().Err(err).Msg("Oracle client unavailable, serving local analysis only")
			oracleClient = nil
		}
	} else {
		log.Warn().Msg("No GEMINI_API_KEY configured - oracle endpoints will serve fallbacks")
	}

	personasHandler := handlers.NewPersonasHandler(store, exec, oracleClient, log)
	oracleHandler := handlers.NewOracleHandler(store, oracleClient, log)

	mux := http.NewServeMux()

	mux.HandleFunc("/api/personas/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/personas/")
		parts := strings.SplitN(rest, "/", 2)
		if len(parts) != 2 || parts[0] == "" {
			middleware.WriteError(w, http.StatusNotFound, "Not found")
			return
		}
		personaID, op := parts[0], parts[1]

		switch {
		case op == "data" && r.Method == http.MethodGet:
			personasHandler.Data(w, r, personaID)
		case op == "analysis" && r.Method == http.MethodGet:
			personasHandler.Analysis(w, r, personaID)
		case op == "details" && r.Method == http.MethodGet:
			personasHandler.Details(w, r, personaID)
		case op == "actions" && r.Method == http.MethodPost:
			personasHandler.Actions(w, r, personaID)
		case op == "auto-actions" && r.Method == http.MethodPost:
			personasHandler.AutoActions(w, r, personaID)
		case op == "actions" || op == "auto-actions":
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Only POST requests are allowed")
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/recommendations/ai", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			oracleHandler.Recommendations(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/market-context", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			oracleHandler.MarketContext(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	handler := middleware.Chain(mux,
		middleware.Recovery,
		middleware.RequestID(log),
		middleware.Logger,
		middleware.CORS,
	)

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", *port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
