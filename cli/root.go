package cli

import (
	"fmt"
	"io"
	"log"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"gorm.io/resultmap"
	"gorm.io/resultmap/config"
	"gorm.io/resultmap/logger"
	"gorm.io/resultmap/schema"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	aliases *schema.TypeAliasRegistry
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Option configures the root command of programs embedding the CLI
type Option func(*RootOptions)

// WithAliases sets the type aliases result maps and type references are looked up in
func WithAliases(aliases *schema.TypeAliasRegistry) Option {
	return func(opts *RootOptions) {
		opts.aliases = aliases
	}
}

// NewRootCommand creates the root command of the resultmap CLI.
func NewRootCommand(options ...Option) *cobra.Command {
	opts := &RootOptions{}
	for _, option := range options {
		option(opts)
	}
	if opts.aliases == nil {
		opts.aliases = schema.NewTypeAliasRegistry(schema.NamingStrategy{})
	}

	cmd := &cobra.Command{
		Use:   "resultmap",
		Short: "Inspect result map and cache namespace declarations",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !lo.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log every resolution step")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewCachesCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))

	return cmd
}

// loadOptions builds the load options of a declaration file, logs go to w
func loadOptions(opts *RootOptions, file *config.File, w io.Writer) ([]resultmap.Option, error) {
	base := logger.New(log.New(w, "\r\n", log.LstdFlags), logger.Config{LogLevel: logger.Warn})

	loadOpts, err := file.Options(base)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		loadOpts = append(loadOpts, resultmap.WithLogger(base.LogMode(logger.Info)))
	}
	return loadOpts, nil
}
