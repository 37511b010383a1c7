package commands

import (
	"strings"

	"github.com/fivetwenty-io/sparkle/pkg/sparkle"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Show the API schema",
		Long:  "Display every collection the API exposes with its primary key and path template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			schema, err := client.Schema(cmd.Context())
			if err != nil {
				return err
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			done, err := encode(cmd.OutOrStdout(), format, schema.Children)
			if done || err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Path", "Primary Key", "Children")

			for _, row := range schemaRows(schema, "") {
				_ = table.Append(row[0], row[1], row[2])
			}

			return renderTable(table)
		},
	}
}

// schemaRows flattens the schema into path templates such as
// "hosts/{id}/nics".
func schemaRows(schema *sparkle.Schema, prefix string) [][3]string {
	var rows [][3]string

	for _, name := range schema.ChildNames() {
		child := schema.Children[name]
		path := prefix + name

		children := strings.Join(child.ChildNames(), ", ")
		if children == "" {
			children = "-"
		}

		rows = append(rows, [3]string{path, child.PrimaryKey, children})
		rows = append(rows, schemaRows(child, path+"/{"+child.PrimaryKey+"}/")...)
	}

	return rows
}
