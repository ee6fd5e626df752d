package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ashishpoonia369/EVs/app"
	"github.com/ashishpoonia369/EVs/config"
	"github.com/ashishpoonia369/EVs/infra/logger"
)

var (
	cfgPath  string
	envFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:           "evs",
	Short:         "Low-battery EV tooling for SUMO simulations",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with EVS_ overrides, ignored when missing")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// Execute runs the CLI until completion or SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// loadConfig loads the configuration and applies explicitly set flags on top
// of it before validating and setting the log level.
func loadConfig(apply func(*config.Config)) (*config.Config, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if apply != nil {
		apply(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger.SetLevel(cfg.Logging.Level)
	return cfg, nil
}

// withService loads the configuration and runs fn with a Service that is
// closed afterwards.
func withService(apply func(*config.Config), fn func(*app.Service) error) error {
	cfg, err := loadConfig(apply)
	if err != nil {
		return err
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return fn(svc)
}
