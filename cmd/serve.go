package cmd

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JoeBee/resumesite/internal/api"
	"github.com/JoeBee/resumesite/internal/config"
	"github.com/JoeBee/resumesite/internal/log"
	"github.com/JoeBee/resumesite/internal/web/static"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the resume website server",
	Long: `Start the HTTP server: the resume page at /, the JSON API under /api,
and health probes at /health and /ready.

Without a GEMINI_API_KEY (or GOOGLE_API_KEY) in the environment the site
still serves; only the ask endpoint responds 503 until a key is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (host:port), overrides configuration")
	serveCmd.Flags().Bool("json", false, "log in JSON format")
	serveCmd.Flags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(serveCmd)

	// The root command runs serve too, with the same flags.
	rootCmd.Flags().String("addr", "", "listen address (host:port), overrides configuration")
	rootCmd.Flags().Bool("json", false, "log in JSON format")
	rootCmd.Flags().BoolP("verbose", "v", false, "enable debug logging")
}

// runServe initializes and starts the HTTP server. The listen address comes
// from, in order: positional argument, --addr flag, configuration.
func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	addr := cfg.Addr
	if flagAddr, _ := cmd.Flags().GetString("addr"); flagAddr != "" {
		addr = flagAddr
	}
	if len(args) > 0 {
		addr = args[0]
	}
	if err := validateAddr(addr); err != nil {
		return fmt.Errorf("invalid address %q: %w", addr, err)
	}

	logger := newLogger(cmd)
	logger.Info("starting resume site", "version", Version)

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	loader := newLoader(cfg)

	// Without an API key the page still serves; the ask endpoint degrades
	// to 503 instead of taking the whole site down.
	var answerer api.Answerer
	if config.HasAPIKey() {
		engine, err := buildEngine(ctx, cfg, loader, logger)
		if err != nil {
			return fmt.Errorf("initializing question answering: %w", err)
		}
		answerer = engine
	} else {
		logger.Warn("no GEMINI_API_KEY or GOOGLE_API_KEY set, ask endpoint disabled")
	}

	srv, err := api.NewServer(api.ServerConfig{
		Logger:     logger.With("component", "api"),
		Loader:     loader,
		Answerer:   answerer,
		Static:     static.Handler(),
		TrustProxy: cfg.TrustProxy,
		RateLimit:  cfg.RateLimit,
		RateBurst:  cfg.RateBurst,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	logger.Info("HTTP server ready",
		"addr", addr,
		"api", "/api/*",
		"health", "/health, /ready",
	)

	return srv.Run(ctx, addr, logger)
}

// newLogger builds the process logger from the command's logging flags.
func newLogger(cmd *cobra.Command) log.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	jsonFormat, _ := cmd.Flags().GetBool("json")
	return log.New(log.Config{Level: level, JSON: jsonFormat})
}
