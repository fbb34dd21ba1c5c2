package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"email-agent/ai"
	"email-agent/config"
	"email-agent/database"
	"email-agent/handlers"
	"email-agent/mailer"
	"email-agent/services"

	"github.com/gorilla/mux"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("loading configuration", "error", err)
		os.Exit(1)
	}

	store, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Error("opening history database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Error("initializing history schema", "error", err)
		os.Exit(1)
	}

	var model services.TextGenerator
	if cfg.GeminiAPIKey != "" {
		client, err := ai.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Error("creating model client", "error", err)
			os.Exit(1)
		}
		model = client
	} else {
		log.Warn("GEMINI_API_KEY is not set, draft generation will be unavailable")
	}

	transport, err := buildTransport(cfg)
	if err != nil {
		log.Error("selecting mail transport", "error", err)
		os.Exit(1)
	}

	drafts := services.NewDraftService(model, log)
	dispatch := services.NewDispatchService(transport, store, log)

	r := mux.NewRouter()
	r.HandleFunc("/api/generate", handlers.GenerateHandler(drafts, log)).Methods(http.MethodPost)
	r.HandleFunc("/api/send", handlers.SendHandler(dispatch, log)).Methods(http.MethodPost)
	r.HandleFunc("/api/history", handlers.HistoryHandler(store, log)).Methods(http.MethodGet)
	r.HandleFunc("/api/health", handlers.HealthHandler(cfg)).Methods(http.MethodGet)

	// Dashboard static files.
	r.PathPrefix("/").Handler(http.FileServer(http.Dir("./web")))

	addr := ":" + cfg.Port
	log.Info("server starting", "addr", addr, "transport", cfg.MailTransport)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// buildTransport selects the single mail transport active for this
// deployment.
func buildTransport(cfg *config.Config) (mailer.Transport, error) {
	switch cfg.MailTransport {
	case config.TransportSMTP:
		return mailer.NewSMTPTransport(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.FromEmail), nil
	case config.TransportResend:
		return mailer.NewResendTransport(cfg.ResendAPIKey, cfg.FromEmail, cfg.FromName), nil
	default:
		return nil, fmt.Errorf("unknown MAIL_TRANSPORT %q (expected %q or %q)", cfg.MailTransport, config.TransportSMTP, config.TransportResend)
	}
}
