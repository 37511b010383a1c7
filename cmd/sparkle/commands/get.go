package commands

import (
	"fmt"

	"github.com/fivetwenty-io/sparkle/internal/constants"
	"github.com/fivetwenty-io/sparkle/pkg/sparkle"
	"github.com/spf13/cobra"
)

// NewGetCommand creates the get command.
func NewGetCommand() *cobra.Command {
	var view string

	cmd := &cobra.Command{
		Use:   "get ENTITY_PATH",
		Short: "Show the state of an entity",
		Long:  "Show the desired and current state of an entity such as 'hosts/h1'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			entity, err := resolveEntity(client, args[0])
			if err != nil {
				return err
			}

			rep, err := entity.State(cmd.Context())
			if err != nil {
				return err
			}

			switch view {
			case "", "all":
			case "desired":
				rep = &sparkle.Representation{Desired: rep.Desired}
			case "current":
				rep = &sparkle.Representation{Current: rep.Current}
			default:
				return fmt.Errorf("%w: --view %s", constants.ErrInvalidView, view)
			}

			return printRepresentation(cmd.OutOrStdout(), rep)
		},
	}

	cmd.Flags().StringVar(&view, "view", "all", "state to show: desired, current or all")

	return cmd
}
