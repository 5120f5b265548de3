package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mwantia/webtop"
	"github.com/mwantia/webtop/command"
	"github.com/mwantia/webtop/command/builtin"
	"github.com/mwantia/webtop/log"
	"github.com/mwantia/webtop/storage"
	"github.com/mwantia/webtop/storage/consul"
	"github.com/mwantia/webtop/storage/ephemeral"
	"github.com/mwantia/webtop/storage/postgres"
	"github.com/mwantia/webtop/storage/s3"
	"github.com/mwantia/webtop/storage/sqlite"

	"github.com/mwantia/webtop/cli/tui"
)

// envOr reads an environment variable with a fallback.
func envOr(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

// setupStore selects the persistence backend from WEBTOP_STORE. The desktop
// state survives restarts with anything but the ephemeral store.
func setupStore() (storage.Backend, error) {
	switch name := envOr("WEBTOP_STORE", "ephemeral"); name {
	case "ephemeral":
		return ephemeral.NewEphemeralBackend(), nil

	case "sqlite":
		return sqlite.NewSQLiteBackend(envOr("WEBTOP_SQLITE_PATH", "webtop.db"))

	case "consul":
		return consul.NewConsulBackend(&consul.ConsulBackendConfig{
			Address: envOr("WEBTOP_CONSUL_ADDR", "127.0.0.1:8500"),
			Token:   os.Getenv("WEBTOP_CONSUL_TOKEN"),
			Prefix:  envOr("WEBTOP_CONSUL_PREFIX", "webtop/"),
		})

	case "postgres":
		return postgres.NewPostgresBackend(os.Getenv("WEBTOP_POSTGRES_DSN"))

	case "s3":
		return s3.NewS3Backend(
			envOr("WEBTOP_S3_ENDPOINT", "127.0.0.1:9000"),
			envOr("WEBTOP_S3_BUCKET", "webtop"),
			os.Getenv("WEBTOP_S3_ACCESS_KEY"),
			os.Getenv("WEBTOP_S3_SECRET_KEY"),
			os.Getenv("WEBTOP_S3_SSL") == "true",
		)

	default:
		return nil, fmt.Errorf("unknown store %q", name)
	}
}

func main() {
	ctx := context.Background()

	if os.Getenv("WEBTOP_DEBUG") != "" {
		if err := tui.InitDebugLog(envOr("WEBTOP_DEBUG_FILE", "debug.log")); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open debug log: %v\n", err)
			os.Exit(1)
		}
		defer tui.CloseDebugLog()
	}

	store, err := setupStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup store: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the screen, so logs go to a file only.
	opts := []webtop.FileSystemOption{
		webtop.WithStore(store),
		webtop.WithStorePrefix(envOr("WEBTOP_PREFIX", "webtop")),
		webtop.WithUser(envOr("WEBTOP_USER", "user")),
		webtop.WithLogFile(envOr("WEBTOP_LOG_FILE", "webtop.log")),
		webtop.WithLogLevel(log.Parse(envOr("WEBTOP_LOG_LEVEL", "info"))),
		webtop.WithoutTerminalLog(),
	}
	if os.Getenv("WEBTOP_LOG_JSON") == "true" {
		opts = append(opts, webtop.WithJSONLog())
	}

	fs, err := webtop.NewFileSystem(ctx, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup desktop: %v\n", err)
		os.Exit(1)
	}
	defer fs.Close(ctx)

	center := command.NewCommandCenter()
	if err := builtin.InitBuiltin(center); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup command center: %v\n", err)
		os.Exit(1)
	}

	// There is no desktop shell here, so launches only land in the log.
	engine := command.NewEngine(fs, center, command.WithLaunchFunc(
		func(ctx context.Context, appID string, args []string) error {
			tui.DebugLog("Launch requested: %s %v", appID, args)
			return nil
		},
	))

	model := tui.NewModel(ctx, engine)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
		os.Exit(1)
	}
}
