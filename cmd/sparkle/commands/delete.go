package commands

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete ENTITY_PATH...",
		Aliases: []string{"rm"},
		Short:   "Delete one or more entities",
		Long:    "Delete each named entity. Every path is attempted; failures are reported together.",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			var result *multierror.Error

			for _, path := range args {
				entity, err := resolveEntity(client, path)
				if err != nil {
					result = multierror.Append(result, err)

					continue
				}

				_, err = entity.Delete(cmd.Context())
				if err != nil {
					result = multierror.Append(result, fmt.Errorf("%s: %w", path, err))

					continue
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", path)
			}

			return result.ErrorOrNil()
		},
	}
}
