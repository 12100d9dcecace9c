package commands

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/formbot/internal/api"
	"github.com/leapstack-labs/formbot/internal/cli/config"
	"github.com/leapstack-labs/formbot/internal/cli/output"
)

// ErrNoToken is returned by commands that call the service without credentials.
var ErrNoToken = errors.New("no API token: set api.token in formbot.yaml, FORMBOT_API_TOKEN, or --token")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Client   *api.Client
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with an authenticated API client.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cc := NewCommandContextWithoutClient(cmd)
	if cc.Cfg.API.Token == "" {
		return nil, ErrNoToken
	}
	cc.Client = newClient(cc.Cfg).WithToken(cc.Cfg.API.Token)
	return cc, nil
}

// NewCommandContextWithoutClient creates a CommandContext without an API client.
// Useful for commands that don't talk to the service.
func NewCommandContextWithoutClient(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the loaded configuration, or the defaults when the
// command ran without the root pre-run hook.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

func newClient(cfg *config.Config) *api.Client {
	return api.New(cfg.API.BaseURL, api.WithTimeout(cfg.API.Timeout))
}
