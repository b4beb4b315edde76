package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dshills/comet/internal/config"
	"github.com/dshills/comet/internal/generate"
	"github.com/dshills/comet/internal/output"
	"github.com/dshills/comet/internal/progress"
	"github.com/dshills/comet/internal/providers"
	"github.com/dshills/comet/internal/session"
)

// Generation flags
var (
	flagStagedOnly   bool
	flagClipboard    bool
	flagMessageFile  string
	flagWorkspace    string
	flagProvider     string
	flagModel        string
	flagFormat       string
	flagOut          string
	flagStyle        string
	flagMaxDiffBytes int
	flagLogCount     int
	flagNoRedact     bool
	flagVerbose      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a commit message for the pending changes",
	Long:  "Generate assembles the staged changes (falling back to unstaged ones) into a context document and asks the configured provider to write the commit message.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		if flagNoRedact {
			cfg.Privacy.RedactSecrets = false
			fmt.Fprintln(os.Stderr, "WARNING: secret redaction is disabled")
		}

		store, err := session.New(cfg.Session.Enabled, cfg.Session.Dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		gen := generate.New(cfg, store, newLogger())
		defer gen.Close()

		dir := flagWorkspace
		if dir == "" {
			if wd, err := os.Getwd(); err == nil {
				dir = wd
			}
		}

		var sink generate.Sink
		switch {
		case flagMessageFile != "":
			sink = &generate.FileSink{Path: flagMessageFile}
		case flagClipboard:
			sink = &generate.ClipboardSink{}
		}

		showBar := cfg.Format != "json" && flagOut == "" && isatty.IsTerminal(os.Stderr.Fd())
		bar := progress.NewBar(os.Stderr, showBar)

		ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
		defer cancel()

		res, err := gen.Generate(ctx, generate.Request{
			Dir:        dir,
			StagedOnly: flagStagedOnly,
			Sink:       sink,
			OnProgress: bar.Set,
		})
		if err != nil {
			bar.Clear()
			if cfg.Format == "json" {
				output.WriteFailure(os.Stdout, err.Error())
			}
			switch {
			case errors.Is(err, generate.ErrNoChanges):
				fmt.Fprintln(os.Stderr, err)
				exitCode = ExitNoChanges
			case errors.Is(err, generate.ErrNoRepository):
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				exitCode = ExitUsageError
			case providers.IsAuthError(err):
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				exitCode = ExitAuthError
			default:
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				exitCode = ExitRuntimeError
			}
			return nil
		}
		bar.Finish()

		if err := output.WriteResult(res, cfg.Format, flagOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
		}
		return nil
	},
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagStyle != "" {
		m["styleFile"] = flagStyle
	}
	if flagMaxDiffBytes > 0 {
		m["maxDiffBytes"] = fmt.Sprintf("%d", flagMaxDiffBytes)
	}
	if flagLogCount > 0 {
		m["logCount"] = fmt.Sprintf("%d", flagLogCount)
	}
	return m
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func init() {
	generateCmd.Flags().BoolVar(&flagStagedOnly, "staged-only", false, "Never fall back to unstaged changes")
	generateCmd.Flags().BoolVar(&flagClipboard, "clipboard", false, "Copy the message to the system clipboard")
	generateCmd.Flags().StringVar(&flagMessageFile, "message-file", "", "Write the message into a commit message file")
	generateCmd.Flags().StringVar(&flagWorkspace, "workspace", "", "Workspace directory (default: current directory)")
	generateCmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (anthropic, openai, gemini, ollama)")
	generateCmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	generateCmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json)")
	generateCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	generateCmd.Flags().StringVar(&flagStyle, "style", "", "Commit style file path")
	generateCmd.Flags().IntVar(&flagMaxDiffBytes, "max-diff-bytes", 0, "Maximum diff size in bytes")
	generateCmd.Flags().IntVar(&flagLogCount, "log-count", 0, "Number of recent commits in the context")
	generateCmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
	generateCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose logging")
}
