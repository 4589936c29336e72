package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rendis/mealee/internal/config"
	"github.com/rendis/mealee/internal/engine/search"
	"github.com/rendis/mealee/internal/tui"
)

const logFileName = "mealee/mealee.log"

func Root() *cobra.Command {
	cfg := new(config.Config)
	var logFile *os.File

	root := &cobra.Command{
		Use:   "mealee",
		Short: "Pick a place to eat, one matchup at a time",
		Long: heredoc.Doc(`mealee asks where you are, what you feel like eating and
			how much you want to spend, then fetches nearby businesses and
			shows them two at a time. Keep the one you like better until a
			single place is left standing.

			Settings come from defaults, then MEALEE_* environment
			variables, then flags. Logs are written to a file since the
			terminal belongs to the game.`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			*cfg = loaded

			f, err := openLog(cfg.LogFile)
			if err != nil {
				return err
			}
			logFile = f
			logrus.SetOutput(f)

			// If --trace flag is provided, set logging level to Trace.
			if cfg.Trace {
				logrus.SetLevel(logrus.TraceLevel)
			}
			logrus.WithField("version", version).Debug("starting")
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logFile == nil {
				return nil
			}
			logrus.SetOutput(os.Stderr)
			return logFile.Close()
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(*cfg)
			if err != nil {
				return err
			}
			return tui.Run(*cfg, client, logrus.StandardLogger())
		},
	}

	// global flags
	def := config.Default()
	flags := root.PersistentFlags()
	flags.String("api-url", def.APIURL, "Base URL of the business search API")
	flags.String("proxy", "", "Proxy URL for API requests")
	flags.String("user-agent", "", "User-Agent header sent to the API")
	flags.Duration("timeout", 0, "Request timeout, 0 waits indefinitely")
	flags.String("log-file", "", "Log file (default $XDG_STATE_HOME/"+logFileName+")")
	flags.BoolP("trace", "t", false, "Show Trace Information")

	root.AddCommand(Fetch(cfg))
	root.AddCommand(Version())

	return root
}

// loadConfig layers defaults, the environment and any flag set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if err := cfg.LoadEnv(os.LookupEnv); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL, _ = flags.GetString("api-url")
	}
	if flags.Changed("proxy") {
		cfg.ProxyURL, _ = flags.GetString("proxy")
	}
	if flags.Changed("user-agent") {
		cfg.UserAgent, _ = flags.GetString("user-agent")
	}
	if flags.Changed("timeout") {
		cfg.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("log-file") {
		cfg.LogFile, _ = flags.GetString("log-file")
	}
	if flags.Changed("trace") {
		cfg.Trace, _ = flags.GetBool("trace")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func openLog(path string) (*os.File, error) {
	if path == "" {
		p, err := xdg.StateFile(logFileName)
		if err != nil {
			return nil, fmt.Errorf("log file: %w", err)
		}
		path = p
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	return f, nil
}

func newClient(cfg config.Config) (*search.Client, error) {
	opts := cfg.ClientOptions()
	opts.Logger = logrus.StandardLogger()
	return search.NewClient(opts)
}
