package commands

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/formbot/internal/cli/config"
	"github.com/leapstack-labs/formbot/internal/settings"
	"github.com/leapstack-labs/formbot/internal/ui"
)

// NewServeCommand creates the serve command.
// Its flags are read by the config loader, so they override
// formbot.yaml and FORMBOT_ variables.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the formbot dashboard",
		Long: `Start a local web server hosting the formbot dashboard.

The dashboard provides:
- Folder and form listing
- Folder creation and deletion
- Form deletion
- Folder sharing by email
- A persisted dark/light theme`,
		Example: `  # Start the dashboard on the default port
  formbot serve

  # Start on a custom port against a remote service
  formbot serve --port 3000 --api-url https://api.formbot.dev

  # Start without auto-opening a browser
  formbot serve --no-browser`,
		RunE: runServe,
	}

	cmd.Flags().Int("port", config.DefaultPort, "Port to serve on")
	cmd.Flags().Bool("no-browser", false, "Don't auto-open browser")
	cmd.Flags().Bool("watch", false, "Reload browsers when static assets change")
	cmd.Flags().String("theme", config.DefaultTheme, "Theme for visitors without a preference (dark|light)")

	_ = cmd.RegisterFlagCompletionFunc("theme", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{string(settings.ThemeDark), string(settings.ThemeLight)}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cc := NewCommandContextWithoutClient(cmd)
	cfg := cc.Cfg

	theme, ok := settings.ParseTheme(cfg.UI.DefaultTheme)
	if !ok {
		return fmt.Errorf("unknown theme %q", cfg.UI.DefaultTheme)
	}
	if cfg.Session.Secret == config.DefaultSessionSecret {
		cc.Logger.Warn("using the built-in session secret; set session.secret outside development")
	}

	server := ui.NewServer(ui.Config{
		Client:        newClient(cfg),
		Port:          cfg.UI.Port,
		Watch:         cfg.UI.Watch,
		SessionSecret: cfg.Session.Secret,
		SessionMaxAge: cfg.Session.MaxAge,
		AuthURL:       cfg.UI.AuthURL,
		WorkspaceURL:  cfg.UI.WorkspaceURL,
		DefaultTheme:  theme,
		ViewIdle:      cfg.UI.ViewIdle,
		Logger:        cc.Logger,
	})

	url := fmt.Sprintf("http://localhost:%d", cfg.UI.Port)
	if cfg.UI.AutoOpen {
		go openBrowser(url)
	}

	cc.Renderer.Printf("Starting dashboard on %s (service: %s)\n", url, cfg.API.BaseURL)
	cc.Renderer.Println(cc.Renderer.Muted("Press Ctrl+C to stop"))

	return server.Serve(cmd.Context())
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
