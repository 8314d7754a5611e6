package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/togglr/config"
	"github.com/s0up4200/togglr/toggl"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	service *toggl.Service
	api     *toggl.API

	// Global flags
	apiVersion  string
	workspaceID int64
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "togglr",
	Short: "A command line client for Toggl Track",
	Long: `togglr talks to the Toggl Track API (current v9 and legacy v8) to list and
manage clients, projects, tags and time entries, filter entries with
expressions, and sync your data into MySQL.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiVersion, "api", "", "API version to use (v9 or v8)")
	rootCmd.PersistentFlags().Int64VarP(&workspaceID, "workspace", "w", 0, "workspace id (default from config or your account)")
}

// offline commands run without a Toggl connection
var offline = map[string]bool{
	"version": true,
	"update":  true,
	"help":    true,
	"filters": true,
}

// initializeApp initializes the configuration and the Toggl service
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	if cmd.Flags().Changed("api") {
		cfg.Toggl.APIVersion = apiVersion
	}
	if cmd.Flags().Changed("workspace") {
		cfg.Toggl.WorkspaceID = workspaceID
	}

	if offline[cmd.Name()] {
		return nil
	}

	selected, ok := toggl.ParseVersion(cfg.Toggl.APIVersion)
	if !ok {
		return fmt.Errorf("invalid API version: %s (must be 'v8' or 'v9')", cfg.Toggl.APIVersion)
	}

	if err := cfg.RequireToken(); err != nil {
		return err
	}

	service, err = toggl.NewServiceWithToken(cfg.Toggl.APIToken,
		toggl.WithBaseURL(cfg.Toggl.BaseURL),
		toggl.WithTimeout(cfg.Toggl.Timeout),
		toggl.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create Toggl client: %w", err)
	}
	api = service.Version(selected)

	logger.Debug().Str("api", api.Version.Name).Str("base_url", cfg.Toggl.BaseURL).Msg("Toggl client ready")
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(os.Stderr),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// resolveWorkspace picks the workspace from the flag, the config, or the
// account's default workspace, in that order.
func resolveWorkspace(ctx context.Context) (int64, error) {
	if cfg.Toggl.WorkspaceID != 0 {
		return cfg.Toggl.WorkspaceID, nil
	}

	resp, err := api.User.Me(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to look up default workspace: %w", err)
	}
	me, err := resp.Body()
	if err != nil {
		return 0, err
	}
	if me == nil || me.DefaultWorkspaceID == 0 {
		return 0, fmt.Errorf("no workspace selected: use --workspace or set toggl.workspace_id")
	}

	cfg.Toggl.WorkspaceID = me.DefaultWorkspaceID
	return me.DefaultWorkspaceID, nil
}

// bodyOf returns the parsed body of resp, treating an empty body as an error.
func bodyOf[T any](resp *toggl.Response[T], what string) (*T, error) {
	v, err := resp.Body()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", what, err)
	}
	if v == nil {
		return nil, fmt.Errorf("empty %s response", what)
	}
	return v, nil
}
