package cmd

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"docrelay/internal/config"
	"docrelay/internal/oauth"
	strutil "docrelay/pkg/strings"
)

const (
	outputTable = "table"
	outputYAML  = "yaml"
)

// newConfigCmd creates the command that prints the effective configuration.
func newConfigCmd() *cobra.Command {
	var configPath, output string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Loads the configuration the same way 'docrelay serve' does (defaults,
yaml file, environment) and prints it. The client secret is redacted.
Validation problems are listed after the configuration and make the
command exit with a non-zero status.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch output {
			case outputTable:
				renderConfigTable(out, cfg)
			case outputYAML:
				if err := renderConfigYAML(out, cfg); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported output format %q (use %s or %s)", output, outputTable, outputYAML)
			}

			if err := cfg.Validate(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", text.FgRed.Sprint("✗"), err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to a yaml configuration file (default ./docrelay.yaml if present)")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table or yaml")
	return cmd
}

// redacted returns a copy of cfg that is safe to print.
func redacted(cfg config.DocRelayConfig) config.DocRelayConfig {
	cfg.Google.ClientSecret = oauth.NewRedactedToken(cfg.Google.ClientSecret).String()
	return cfg
}

func renderConfigTable(out io.Writer, cfg config.DocRelayConfig) {
	cfg = redacted(cfg)

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("KEY"),
		text.FgHiCyan.Sprint("VALUE"),
	})
	rows := []table.Row{
		{"server.listen", cfg.Server.Listen},
		{"server.shutdownTimeout", cfg.Server.ShutdownTimeout},
		{"google.clientId", cfg.Google.ClientID},
		{"google.clientSecret", cfg.Google.ClientSecret},
		{"google.clientUrl", cfg.Google.ClientURL},
		{"google.redirectUri", cfg.Google.GetRedirectURI()},
		{"google.authUrl", cfg.Google.AuthURL},
		{"google.tokenUrl", cfg.Google.TokenURL},
		{"google.docsBaseUrl", cfg.Google.DocsBaseURL},
		{"google.httpTimeout", cfg.Google.HTTPTimeout},
	}
	for _, row := range rows {
		t.AppendRow(table.Row{
			text.FgHiCyan.Sprint(row[0]),
			strutil.Truncate(fmt.Sprintf("%v", row[1]), strutil.DefaultTableValueMaxLen),
		})
	}
	t.Render()
}

func renderConfigYAML(out io.Writer, cfg config.DocRelayConfig) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(redacted(cfg)); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return encoder.Close()
}
