package commands

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list COLLECTION_PATH",
		Aliases: []string{"ls"},
		Short:   "List the entities of a collection",
		Long:    "List the entities of a collection such as 'hosts' or 'hosts/h1/nics', in the order the API returns them",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			collection, err := resolveCollection(client, args[0])
			if err != nil {
				return err
			}

			entities, err := collection.List(cmd.Context())
			if err != nil {
				return err
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			uris := make([]string, 0, len(entities))
			for _, entity := range entities {
				uris = append(uris, entity.URI())
			}

			done, err := encode(cmd.OutOrStdout(), format, uris)
			if done || err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("#", "URI")

			for i, uri := range uris {
				_ = table.Append(strconv.Itoa(i), uri)
			}

			return renderTable(table)
		},
	}
}
