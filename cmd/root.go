package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kilianp07/dispatchsim/app"
	"github.com/kilianp07/dispatchsim/config"
	"github.com/kilianp07/dispatchsim/core/monitoring"
	"github.com/kilianp07/dispatchsim/infra/logger"
	inframon "github.com/kilianp07/dispatchsim/infra/monitoring"
)

var (
	cfgPath string
	envPath string
)

var rootCmd = &cobra.Command{
	Use:   "dispatchsim",
	Short: "Merit-order dispatch simulator",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envPath == "" {
			return nil
		}
		if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", envPath, err)
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "scenario.yaml", "scenario configuration file")
	rootCmd.PersistentFlags().StringVar(&envPath, "env-file", ".env", "dotenv file with DS_ overrides")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func newService() (*app.Service, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	mon, err := inframon.NewSentryMonitor(cfg.Sentry, cfg.Name)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	monitoring.Init(mon)
	svc, err := app.New(cfg)
	if err != nil {
		monitoring.CaptureException(err, map[string]string{"scenario": cfg.Name})
		return nil, err
	}
	return svc, nil
}

func closeService(svc *app.Service) {
	if err := svc.Close(); err != nil {
		logger.New("main").Errorf("service close: %v", err)
	}
	monitoring.Flush(2 * time.Second)
}
