package cmd

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/docsgate/docsgate/api"
	"github.com/docsgate/docsgate/auth"
	"github.com/docsgate/docsgate/directory"
	"github.com/docsgate/docsgate/internal/config"
	"github.com/docsgate/docsgate/mail"
	"github.com/docsgate/docsgate/storage"
	boltstorage "github.com/docsgate/docsgate/storage/bolt"
	filestorage "github.com/docsgate/docsgate/storage/file"
	memorystorage "github.com/docsgate/docsgate/storage/memory"
	"github.com/docsgate/docsgate/web"
)

var (
	port    int
	tlsCert string
	tlsKey  string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the portal auth and directory server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: cfg.LogLevel,
		}))

		store, backend, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		users := storage.NewCollection[*directory.User](store, directory.UsersCollection, logger)
		otps := storage.NewCollection[*auth.OTP](store, auth.OTPCollection, logger)

		var mailer mail.Mailer
		if cfg.SMTPHost != "" {
			mailer = mail.NewSMTP(mail.SMTPConfig{
				Host:     cfg.SMTPHost,
				Port:     cfg.SMTPPort,
				Username: cfg.SMTPUsername,
				Password: cfg.SMTPPassword,
				From:     cfg.FromEmail,
				AppName:  cfg.AppName,
				OTPTTL:   cfg.OTPTTL,
			})
		} else {
			mailer = &mail.LogMailer{Logger: logger}
		}

		dir := directory.NewService(users, mailer, logger)
		if _, err := dir.Seed(cmd.Context()); err != nil {
			return fmt.Errorf("seeding directory: %w", err)
		}

		codec := auth.NewTokenCodec([]byte(cfg.SessionSecret), cfg.SessionTTL)
		authSvc := auth.NewService(dir, otps, mailer, codec, logger,
			auth.WithOTPTTL(cfg.OTPTTL))

		a := api.New(authSvc, dir, users, otps, backend, api.WithLogger(logger))

		r := chi.NewRouter()
		r.Use(middleware.Logger)
		r.Use(middleware.Recoverer)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		r.Mount("/api/v1", a.Router())

		webHandler, err := web.Handler()
		if err != nil {
			return err
		}
		r.Handle("/*", webHandler)

		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		serveTLS := tlsCert != "" && tlsKey != ""
		if serveTLS {
			cert, err := tls.LoadX509KeyPair(tlsCert, tlsKey)
			if err != nil {
				return fmt.Errorf("failed to load TLS key pair: %w", err)
			}
			server.TLSConfig = &tls.Config{
				Certificates: []tls.Certificate{cert},
				MinVersion:   tls.VersionTLS12,
			}
		}

		// Graceful shutdown on SIGINT/SIGTERM.
		done := make(chan error, 1)
		go func() {
			var err error
			if serveTLS {
				err = server.ListenAndServeTLS("", "")
			} else {
				err = server.ListenAndServe()
			}
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				done <- fmt.Errorf("server failed: %w", err)
				return
			}
			done <- nil
		}()

		printBanner()
		fmt.Printf("Starting server on port %d (storage: %s)...\n", port, backend)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			fmt.Printf("\nReceived %s, shutting down...\n", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}
			return nil
		case err := <-done:
			return err
		}
	},
}

// openStore picks the storage backend from the configuration: a bolt
// database when a path is set, JSON files when a data directory is set,
// otherwise process memory.
func openStore(cfg *config.Config) (storage.Store, string, error) {
	switch {
	case cfg.BoltPath != "":
		store, err := boltstorage.Open(cfg.BoltPath)
		if err != nil {
			return nil, "", fmt.Errorf("opening bolt storage: %w", err)
		}
		return store, "bolt", nil
	case cfg.DataDir != "":
		store, err := filestorage.New(cfg.DataDir)
		if err != nil {
			return nil, "", fmt.Errorf("opening file storage: %w", err)
		}
		return store, "file", nil
	default:
		return memorystorage.New(), "memory", nil
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on")
	serverCmd.Flags().StringVar(&tlsCert, "tls-cert", "", "Path to TLS certificate file")
	serverCmd.Flags().StringVar(&tlsKey, "tls-key", "", "Path to TLS key file")
}
