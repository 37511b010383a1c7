package commands

import (
	"github.com/fivetwenty-io/sparkle/internal/constants"
	"github.com/spf13/cobra"
)

// NewCreateCommand creates the create command.
func NewCreateCommand() *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "create COLLECTION_PATH",
		Short: "Create an entity",
		Long: `Create an entity in a collection. --data takes JSON or YAML, or @file to
read it from a file.`,
		Example: `  sparkle create hosts --data '{"id": "h1", "cpus": 4}'
  sparkle create hosts/h1/nics --data @nic.yml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if data == "" {
				return constants.ErrDataRequired
			}

			var body interface{}

			err := parseInput(data, &body)
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			collection, err := resolveCollection(client, args[0])
			if err != nil {
				return err
			}

			result, err := collection.Post(cmd.Context(), body)
			if err != nil {
				return err
			}

			return printResult(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "entity body as JSON or YAML, or @file")

	return cmd
}
