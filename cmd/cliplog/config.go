package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/cliplog/internal/ipc"
	"go.klb.dev/cliplog/internal/logging"
)

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and CLIPLOG_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → CLIPLOG_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		v.SetConfigFile(configFlag)
	} else {
		v.SetConfigName("cliplog")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/cliplog/")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(fmt.Sprintf("%s/.config/cliplog", home))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("CLIPLOG")
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// addLoggingFlags adds the standard logging flags to a command.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-background", false, "run interactively: tinter logs + debug level")
	cmd.Flags().String("log-format", "auto", "log format: auto|text|json")
	cmd.Flags().String("log-level", "", "log level: debug|info|warn|error (default: info, debug with --no-background)")
	cmd.Flags().String("log-file", "", "write logs to this file (default with --ui: "+logging.DefaultFile()+")")
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to config file (overrides auto-discovery)")
}

// addSocketFlag adds the --socket flag. The default is resolved when the
// flag is read so that $CLIPLOG_SOCKET set by tests or wrappers applies.
func addSocketFlag(cmd *cobra.Command) {
	cmd.Flags().String("socket", "", "IPC socket path (default "+ipc.SocketPath()+")")
}

func socketPath(v *viper.Viper) string {
	if s := v.GetString("socket"); s != "" {
		return s
	}
	return ipc.SocketPath()
}

// setupLogging reads logging flags from viper and configures slog. When the
// terminal belongs to the UI, logs go to a file instead of stderr. The
// returned closer releases that file.
func setupLogging(v *viper.Viper, ownsTerminal bool) (io.Closer, error) {
	var (
		w      io.Writer = os.Stderr
		closer io.Closer = io.NopCloser(nil)
	)
	path := v.GetString("log-file")
	if path == "" && ownsTerminal {
		path = logging.DefaultFile()
	}
	if path != "" {
		f, err := logging.OpenFile(path)
		if err != nil {
			return nil, err
		}
		w, closer = f, f
	}

	interactive := v.GetBool("no-background") || (!ownsTerminal && logging.IsTTY(os.Stderr))
	resolveLogging(w, interactive, v.GetString("log-format"), v.GetString("log-level"))
	return closer, nil
}

// resolveLogging sets up the global slog logger after flags are parsed.
func resolveLogging(w io.Writer, interactive bool, formatStr, levelStr string) {
	format := logging.ParseFormat(formatStr)
	level := logging.ParseLevel(levelStr)
	if levelStr == "" {
		if interactive {
			level = slog.LevelDebug
		} else {
			level = slog.LevelInfo
		}
	}
	logging.Setup(w, format, level)
}
