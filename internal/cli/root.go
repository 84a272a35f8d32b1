// Package cli defines the dirliner command line.
package cli

import (
	"context"

	"github.com/bethropolis/dirliner/internal/app"
	"github.com/bethropolis/dirliner/internal/config"
	"github.com/spf13/cobra"
)

const examples = `  dirliner -s ./src -t ./dist            # Basic usage
  dirliner -s ./src -v                   # Verbose output
  dirliner -i "node_modules/,*.log"      # Ignore patterns
  dirliner --ignore-file .customignore   # Custom ignore file
  dirliner --config dirliner.yaml --json # Settings from a file, JSON result`

// NewRootCommand builds the dirliner command. Each call has its own Config.
func NewRootCommand() *cobra.Command {
	cfg := config.New()

	cmd := &cobra.Command{
		Use:   "dirliner",
		Short: "Transform directory structures into flat files",
		Long: `dirliner copies every file of a directory tree into a single flat directory,
naming each copy after its original path: src/a/b.txt becomes a-b.txt.

Files and directories can be excluded with glob patterns given on the command
line or listed in an ignore file (default .dirlinerignore).`,
		Example:       examples,
		Version:       cfg.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.ConfigFile != "" {
				if err := cfg.ApplyFile(cfg.ConfigFile, cmd.Flags().Changed); err != nil {
					return err
				}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			cfg.Finalize()

			application, err := app.New(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = application.Close()
			}()

			return application.Run(cmd.Context())
		},
	}

	cfg.BindFlags(cmd.Flags())
	cmd.Flags().BoolP("version", "V", false, "Output the current version")
	cmd.SetVersionTemplate("{{.Version}}\n")

	return cmd
}

// Execute runs the root command with the process arguments.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
