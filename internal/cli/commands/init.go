package commands

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/formbot/internal/cli/config"
	"github.com/leapstack-labs/formbot/internal/cli/output"
)

const configHeader = `# formbot configuration.
# Every key can be overridden with a FORMBOT_ variable, e.g. FORMBOT_UI_PORT=9000.
# Keep api.token out of this file; export FORMBOT_API_TOKEN instead.
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a formbot.yaml with default settings",
		Long: `Write a formbot.yaml configuration file.

The file holds the service base URL, dashboard server settings, and a freshly
generated session secret. Values set through flags or FORMBOT_ variables
while running init are written into the file.`,
		Example: `  # Initialize in current directory
  formbot init

  # Point the new config at a remote service
  formbot init --api-url https://api.formbot.dev

  # Force overwrite existing config
  formbot init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg := getConfig()
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
			return runInit(r, cfg, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(r *output.Renderer, cfg *config.Config, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "formbot.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("formbot.yaml already exists. Use --force to overwrite")
	}

	data, err := renderConfigFile(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	r.StatusLine(configPath, "success", "")
	r.Println("")
	r.Success("formbot configured!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Export FORMBOT_API_TOKEN to use the folders and forms commands")
	r.Println("  2. Set ui.auth_url to your sign-in service")
	r.Println("  3. Run 'formbot serve' to start the dashboard")

	return nil
}

// renderConfigFile encodes cfg without the token and with a new session secret.
func renderConfigFile(cfg *config.Config) ([]byte, error) {
	out := *cfg
	out.API.Token = ""

	secret, err := newSessionSecret()
	if err != nil {
		return nil, err
	}
	out.Session.Secret = secret

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&out); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newSessionSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
