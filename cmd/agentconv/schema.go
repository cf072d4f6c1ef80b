package main

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jingkaihe/agentconv/pkg/agents"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of converted agent frontmatter",
		Long: `Print the JSON Schema describing the frontmatter of converted agents.
Editors can use it to validate agent files while they are written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := json.MarshalIndent(agents.GenerateSchema(), "", "  ")
			if err != nil {
				return errors.Wrap(err, "failed to marshal schema")
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
