// Package cli implements blockdoc, a command line tool for inspecting stored block
// documents outside the service.
package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"content-backend/internal/blocks"
	"content-backend/internal/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "yaml"

	MediaPlacement string
	LeadingMedia   string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"json", "yaml"}

// NewRootCommand creates the root command for the blockdoc CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "blockdoc",
		Short: "Inspect and repair article block documents",
		Long: `blockdoc reads the stored form of an article body (JSON or YAML, "-" for stdin)
and normalizes, validates, renders or flattens it the same way the content service does.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			_, err := opts.Policy()
			return err
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output on stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "json", "output format (json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.MediaPlacement, "media-placement", string(blocks.MediaAtEnd),
		"where a missing media block is inserted (end|after-first)")
	cmd.PersistentFlags().StringVar(&opts.LeadingMedia, "leading-media", string(blocks.MoveMediaToEnd),
		"repair for a media block at the top (move-to-end|insert-placeholder)")

	cmd.AddCommand(NewNormalizeCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTextCommand(opts))
	cmd.AddCommand(NewRenderCommand(opts))

	return cmd
}

// Policy builds the normalizer policy from the flags.
func (o *RootOptions) Policy() (blocks.Policy, error) {
	p := blocks.Policy{
		MissingMedia: blocks.MediaPlacement(o.MediaPlacement),
		LeadingMedia: blocks.LeadingRepair(o.LeadingMedia),
	}
	if p.MissingMedia == "" {
		p.MissingMedia = blocks.MediaAtEnd
	}
	if p.LeadingMedia == "" {
		p.LeadingMedia = blocks.MoveMediaToEnd
	}
	if !p.MissingMedia.Valid() {
		return p, fmt.Errorf("invalid --media-placement %q", o.MediaPlacement)
	}
	if !p.LeadingMedia.Valid() {
		return p, fmt.Errorf("invalid --leading-media %q", o.LeadingMedia)
	}
	return p, nil
}

func (o *RootOptions) logger(cmd *cobra.Command) logger.Logger {
	if !o.Verbose {
		return logger.Nop()
	}
	cfg := logger.DefaultConfig()
	cfg.Level = logger.DebugLevel
	cfg.Output = cmd.ErrOrStderr()
	return logger.NewLogger(cfg)
}
