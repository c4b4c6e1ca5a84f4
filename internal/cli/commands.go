package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"content-backend/internal/blocks"
	"content-backend/internal/models"
	"content-backend/internal/render"
	"content-backend/internal/serializer"
)

// NewNormalizeCommand creates the normalize command.
func NewNormalizeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <file>",
		Short: "Print the canonical storage form of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := readForm(cmd, args[0])
			if err != nil {
				return err
			}
			policy, _ := rootOpts.Policy()
			raw := serializer.Decode(form)
			doc := policy.Normalize(raw)
			rootOpts.logger(cmd).Debug("normalized document", "file", args[0], "records", len(form), "blocks", len(doc))
			return writeOutput(cmd, rootOpts.Format, serializer.ToStorageForm(doc))
		},
	}
}

// ValidationResult is the report of the validate command.
type ValidationResult struct {
	Valid  bool   `json:"valid" yaml:"valid"`
	Blocks int    `json:"blocks" yaml:"blocks"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewValidateCommand creates the validate command. It checks the document as stored,
// without normalizing it first, and fails when it is not canonical.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a stored document against the block invariants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := readForm(cmd, args[0])
			if err != nil {
				return err
			}
			if len(form) != len(serializer.Decode(form)) {
				res := ValidationResult{Blocks: len(form), Error: blocks.ErrUnknownKind.Error()}
				if err := writeOutput(cmd, rootOpts.Format, res); err != nil {
					return err
				}
				return fmt.Errorf("%s: %w", args[0], blocks.ErrUnknownKind)
			}

			doc := serializer.Decode(form)
			if err := validateStored(form, doc); err != nil {
				res := ValidationResult{Blocks: len(doc), Error: err.Error()}
				if werr := writeOutput(cmd, rootOpts.Format, res); werr != nil {
					return werr
				}
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return writeOutput(cmd, rootOpts.Format, ValidationResult{Valid: true, Blocks: len(doc)})
		},
	}
}

// validateStored runs the structural checks on the records as written. Decode fills in
// missing ids, so those are reported from the records themselves.
func validateStored(form serializer.StorageForm, doc blocks.Document) error {
	for i, r := range form {
		if r.ID == "" {
			return fmt.Errorf("block %d: %w", i, blocks.ErrMissingID)
		}
	}
	return blocks.Validate(doc)
}

// NewTextCommand creates the text command.
func NewTextCommand(rootOpts *RootOptions) *cobra.Command {
	var summary int

	cmd := &cobra.Command{
		Use:   "text <file>",
		Short: "Print the plain text of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := readForm(cmd, args[0])
			if err != nil {
				return err
			}
			policy, _ := rootOpts.Policy()
			doc := serializer.FromStorageFormWith(form, policy)

			text := serializer.PlainText(doc)
			if summary > 0 {
				text = serializer.Summary(doc, summary)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().IntVar(&summary, "summary", 0, "print a one-line summary of at most N characters")
	return cmd
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		published bool
		trailer   string
	)

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Print the presentations the editor preview or article page would show",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := readForm(cmd, args[0])
			if err != nil {
				return err
			}
			policy, _ := rootOpts.Policy()
			doc := serializer.FromStorageFormWith(form, policy)

			out := render.Document(doc, models.MediaContent{TrailerURL: trailer})
			if published {
				out = render.Visible(out)
			}
			return writeOutput(cmd, rootOpts.Format, out)
		},
	}

	cmd.Flags().BoolVar(&published, "published", false, "drop blocks the article page would not show")
	cmd.Flags().StringVar(&trailer, "trailer", "", "trailer URL to place at the media block")
	return cmd
}

func jsonIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
