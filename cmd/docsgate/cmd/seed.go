package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/docsgate/docsgate/directory"
	"github.com/docsgate/docsgate/internal/config"
	"github.com/docsgate/docsgate/mail"
	"github.com/docsgate/docsgate/storage"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default demo accounts in the configured storage backend",
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
		dir := directory.NewService(users, &mail.LogMailer{Logger: logger}, logger)

		created, err := dir.Seed(cmd.Context())
		if err != nil {
			return fmt.Errorf("seeding directory: %w", err)
		}
		if len(created) == 0 {
			fmt.Printf("Directory in %s storage is not empty, nothing seeded\n", backend)
			return nil
		}
		for _, u := range created {
			fmt.Printf("Created %s account %s\n", u.Role, u.Email)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
