package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/eruzetaien/KnowMore-sub000/internal/app"
	"github.com/eruzetaien/KnowMore-sub000/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const releaseVersion = "0.1.0"

func main() {
	cobra.CheckErr(newCmd().Execute())
}

func newCmd() *cobra.Command {
	var cfg config.Config

	v := viper.New()
	v.SetEnvPrefix("KNOWMORE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "knowmore",
		Short:         "Terminal client for the KnowMore two-truths-and-a-lie party game.",
		Args:          cobra.ExactArgs(0),
		Version:       releaseVersion,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := newLogger(cfg.Log.Format)
			a, err := app.New(cfg, log)
			if err != nil {
				return err
			}
			return a.Run(cmd.Context())
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&cfg.ServerURL, "server", "s", "http://localhost:8080", "base URL of the game server (env: KNOWMORE_SERVER)")
	fs.StringVar(&cfg.HubPath, "hub-path", "/gamehub", "path of the realtime hub endpoint (env: KNOWMORE_HUB_PATH)")
	fs.StringVar(&cfg.TokenFile, "token-file", defaultTokenFile(), "file holding the session token (env: KNOWMORE_TOKEN_FILE)")
	fs.DurationVar(&cfg.DialTimeout, "dial-timeout", 10*time.Second, "websocket handshake timeout (env: KNOWMORE_DIAL_TIMEOUT)")
	fs.DurationVar(&cfg.PingInterval, "ping-interval", 25*time.Second, "keepalive ping period (env: KNOWMORE_PING_INTERVAL)")
	fs.Uint64Var(&cfg.MaxRedials, "max-redials", 5, "dial attempts per connect, 0 for unlimited (env: KNOWMORE_MAX_REDIALS)")
	fs.StringVar(&cfg.Log.Format, "log-format", "text", "log output format, text or json (env: KNOWMORE_LOG_FORMAT)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("knowmore v{{.Version}}\n")

	return cmd
}

func newLogger(format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".knowmore-token"
	}
	return filepath.Join(dir, "knowmore", "token")
}
