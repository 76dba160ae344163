package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/minapi/minapi/internal/compact"
	"github.com/minapi/minapi/internal/config"
	"github.com/minapi/minapi/internal/document"
	"github.com/minapi/minapi/internal/validate"
)

func CompactCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compact",
		Short: "Compact an OpenAPI/Swagger description into a token-minimal form",
		RunE:  runCompact,
	}

	config.BindFlags(cmd)

	return cmd
}

func runCompact(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}

	data, err := readSpec(cmd, cfg.Spec)
	if err != nil {
		return fmt.Errorf("reading spec: %w", err)
	}

	if cfg.Validate {
		findings, err := validate.Document(data)
		if err != nil {
			return fmt.Errorf("validating spec: %w", err)
		}
		for _, f := range findings {
			cmd.PrintErrf("Warning: %s\n", f)
		}
	}

	engine := compact.NewEngine(cfg.Options(), document.YAMLParser())
	result, err := engine.Run(string(data))
	if err != nil {
		return fmt.Errorf("compacting spec: %w", err)
	}

	if cfg.Output != "" {
		if err := os.WriteFile(cfg.Output, []byte(result.Output), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", cfg.Output, err)
		}
		cmd.PrintErrf("Written: %s\n", cfg.Output)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), result.Output)
	}

	cmd.PrintErrf("input %d bytes, output %d bytes, reduced %d%%\n",
		result.InputBytes, result.OutputBytes, result.Reduction)

	return nil
}

func readSpec(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
