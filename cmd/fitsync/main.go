package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/healthfitlab/fitsync/internal/config"
	"github.com/healthfitlab/fitsync/internal/database"
	"github.com/healthfitlab/fitsync/internal/entity"
	"github.com/healthfitlab/fitsync/internal/logging"
	"github.com/healthfitlab/fitsync/internal/reconciler"
	"github.com/healthfitlab/fitsync/internal/remote"
	"github.com/healthfitlab/fitsync/internal/store"
)

var cfgFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "fitsync",
		Short: "Device-side sync engine for the HealthFit cache",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	setupFlags(rootCmd)

	rootCmd.AddCommand(
		newCycleCommand("pull", "Fetch catalog and user data into the local cache", func(ctx context.Context, r *reconciler.Reconciler) reconciler.Report {
			report := r.PullCatalog(ctx)
			report.Merge(r.PullUserData(ctx))
			return report
		}),
		newCycleCommand("push", "Send pending local rows to the remote service", func(ctx context.Context, r *reconciler.Reconciler) reconciler.Report {
			report := r.PushUnsynced(ctx)
			report.Merge(r.PushChat(ctx))
			return report
		}),
		newCycleCommand("sync", "Run a full pull and push cycle", func(ctx context.Context, r *reconciler.Reconciler) reconciler.Report {
			return r.Sync(ctx)
		}),
		newStatusCommand(),
		newCreateFoodCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupFlags(cmd *cobra.Command) {
	config.ApplyDefaults(viper.GetViper())
	defaults := config.NewViper()
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file")
	cmd.PersistentFlags().String("api-base-url", defaults.GetString("api.base_url"), "Remote API base URL")
	cmd.PersistentFlags().String("api-token", "", "Bearer token for the remote API (overrides env)")
	cmd.PersistentFlags().String("database-path", defaults.GetString("database.path"), "SQLite cache path")
	cmd.PersistentFlags().String("user-id", "", "User identifier to sync")
	cmd.PersistentFlags().String("device-name", defaults.GetString("device.name"), "Device name reported with pushes")
	cmd.PersistentFlags().String("log-level", defaults.GetString("log.level"), "Log level (debug, info, warn, error)")

	bindFlag(cmd, "api.base_url", "api-base-url")
	bindFlag(cmd, "api.token", "api-token")
	bindFlag(cmd, "database.path", "database-path")
	bindFlag(cmd, "user.id", "user-id")
	bindFlag(cmd, "device.name", "device-name")
	bindFlag(cmd, "log.level", "log-level")
}

func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	if err := viper.ReadInConfig(); err != nil {
		// An explicitly requested file must exist; the implicit lookup
		// is allowed to find nothing.
		if cfgFile != "" {
			return err
		}
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return err
		}
	}

	return nil
}

type app struct {
	cfg        config.AppConfig
	logger     *zap.Logger
	store      *store.Store
	reconciler *reconciler.Reconciler
	close      func()
}

func buildApp() (*app, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	db, err := database.OpenSQLite(cfg.DatabasePath, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	cacheStore, err := store.NewStore(store.StoreConfig{Database: db, Logger: logger})
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	apiClient, err := remote.NewClient(remote.Config{
		BaseURL: cfg.APIBaseURL,
		Tokens:  remote.NewStaticTokenSource(cfg.APIToken),
		Timeout: cfg.HTTPTimeout,
		Logger:  logger,
	})
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	engine, err := reconciler.New(reconciler.Config{
		Store:  cacheStore,
		Client: apiClient,
		UserID: cfg.UserID,
		Logger: logger,
	})
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	return &app{
		cfg:        cfg,
		logger:     logger,
		store:      cacheStore,
		reconciler: engine,
		close: func() {
			logger.Sync() //nolint:errcheck
			sqlDB.Close()
		},
	}, nil
}

func newCycleCommand(use, short string, run func(context.Context, *reconciler.Reconciler) reconciler.Report) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp()
			if err != nil {
				return err
			}
			defer application.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			report := run(ctx, application.reconciler)
			logReport(application.logger, use, report)
			return nil
		},
	}
}

// Remote failures stay inside the report: they are retried on the next
// invocation and must not fail the command. Local failures surface before
// a report exists.
func logReport(logger *zap.Logger, cycle string, report reconciler.Report) {
	records := 0
	for _, result := range report.Collections {
		records += result.Records
	}
	failed := report.Failed()
	logger.Info("cycle finished",
		zap.String("cycle", cycle),
		zap.Int("collections", len(report.Collections)),
		zap.Int("records", records),
		zap.Int("failed", len(failed)))
}

func newCreateFoodCommand() *cobra.Command {
	var (
		name     string
		calories int
		protein  float64
		carbs    float64
		fat      float64
	)
	cmd := &cobra.Command{
		Use:   "create-food",
		Short: "Create a custom food on the server and cache it locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return errors.New("--name is required")
			}
			application, err := buildApp()
			if err != nil {
				return err
			}
			defer application.close()

			created, err := application.reconciler.CreateCustomFood(cmd.Context(), entity.Food{
				Name:     name,
				Calories: calories,
				Protein:  protein,
				Carbs:    carbs,
				Fat:      fat,
			})
			if err != nil {
				return err
			}
			application.logger.Info("custom food created",
				zap.String("id", created.ID),
				zap.String("name", created.Name))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Food name")
	cmd.Flags().IntVar(&calories, "calories", 0, "Calories per portion")
	cmd.Flags().Float64Var(&protein, "protein", 0, "Protein grams")
	cmd.Flags().Float64Var(&carbs, "carbs", 0, "Carbohydrate grams")
	cmd.Flags().Float64Var(&fat, "fat", 0, "Fat grams")
	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report cached row counts and rows awaiting push",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp()
			if err != nil {
				return err
			}
			defer application.close()

			status, err := application.store.Status(cmd.Context(), application.cfg.UserID)
			if err != nil {
				return err
			}
			for collection, count := range status.Catalog {
				application.logger.Info("catalog cache",
					zap.String("collection", collection),
					zap.Int64("rows", count))
			}
			for collection, count := range status.Pending {
				application.logger.Info("pending push",
					zap.String("collection", collection),
					zap.Int64("rows", count))
			}
			return nil
		},
	}
}
