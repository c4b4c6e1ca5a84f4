package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"content-backend/internal/serializer"
)

// readForm loads a storage form from path, or stdin for "-". Files ending in .yaml or
// .yml are parsed as YAML, everything else as JSON.
func readForm(cmd *cobra.Command, path string) (serializer.StorageForm, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return serializer.ParseYAML(data)
	default:
		return serializer.ParseJSON(data)
	}
}

func writeOutput(cmd *cobra.Command, format string, v any) error {
	out := cmd.OutOrStdout()
	if format == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	data, err := jsonIndent(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
