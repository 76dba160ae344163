package cli

import "github.com/spf13/cobra"

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "minapi",
		Short:   "minapi - compact OpenAPI/Swagger specs for LLM context windows",
		Version: "1.0.0",

		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.AddCommand(CompactCommand())

	return root
}
