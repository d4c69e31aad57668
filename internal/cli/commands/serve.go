package commands

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/quarterdeck-labs/quarterdeck/internal/cli/config"
	"github.com/quarterdeck-labs/quarterdeck/internal/console/fixtures"
	"github.com/quarterdeck-labs/quarterdeck/internal/ui"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port      int
	NoBrowser bool
	Watch     bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Quarterdeck web console",
		Long: `Start a local web server providing the admin console UI.

The console provides:
- Player browser with search, paging, and moderation actions
- Key-value storage inspector
- Authentication testing for device, email, and custom providers
- Live updates pushed to connected browsers`,
		Example: `  # Start the console on the default port
  quarterdeck serve

  # Start on a custom port
  quarterdeck serve --port 3000

  # Browse built-in demo data without a database
  quarterdeck serve --demo

  # Start without auto-opening the browser
  quarterdeck serve --no-browser`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8780)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Watch fixture files for changes (demo mode)")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	// Get UI config with defaults
	uiCfg := cfg.GetUIConfig()

	// CLI flags override config file
	port := uiCfg.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	autoOpen := uiCfg.AutoOpen
	if opts.NoBrowser {
		autoOpen = false
	}

	watch := uiCfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	source, cleanup, err := openSource(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	serverCfg := ui.Config{
		Source:        source,
		Port:          port,
		PageSize:      uiCfg.PageSize,
		SessionSecret: sessionSecret(uiCfg),
		Logger:        logger,
	}

	// In demo mode with an on-disk fixtures directory, watch it so edits
	// show up in connected browsers without a restart.
	if provider, ok := source.(*fixtures.Provider); ok && watch && provider.Dir() != "" {
		serverCfg.WatchDir = provider.Dir()
		serverCfg.Reload = provider.Reload
	}

	server := ui.NewServer(serverCfg)

	// Open browser if configured
	if autoOpen {
		url := fmt.Sprintf("http://localhost:%d", port)
		go openBrowser(url)
	}

	fmt.Printf("Starting console on http://localhost:%d (source: %s)\n", port, source.Name())
	fmt.Println("Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	return server.Serve(ctx)
}

// sessionSecret resolves the cookie session secret.
// In production this should come from config or the environment.
func sessionSecret(uiCfg *config.UIConfig) string {
	if uiCfg.SessionSecret != "" {
		return uiCfg.SessionSecret
	}
	if secret := os.Getenv("QUARTERDECK_SESSION_SECRET"); secret != "" {
		return secret
	}
	// Default secret for development (nolint:gosec)
	return "quarterdeck-dev-secret-change-in-production" //nolint:gosec
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
