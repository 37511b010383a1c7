package commands

import (
	"github.com/fivetwenty-io/sparkle/internal/constants"
	"github.com/fivetwenty-io/sparkle/pkg/sparkle"
	"github.com/spf13/cobra"
)

// NewPatchCommand creates the patch command.
func NewPatchCommand() *cobra.Command {
	var ops string

	cmd := &cobra.Command{
		Use:   "patch PATH",
		Short: "Apply a patch to a collection or entity",
		Long: `Apply a list of JSON-Patch style operations to a collection or entity.
--ops takes JSON or YAML, or @file to read it from a file.`,
		Example: `  sparkle patch hosts/h1 --ops '[{"op": "replace", "path": "/desired/cpus", "value": 8}]'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ops == "" {
				return constants.ErrOpsRequired
			}

			var operations []sparkle.PatchOperation

			err := parseInput(ops, &operations)
			if err != nil {
				return err
			}

			err = sparkle.ValidatePatch(operations)
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			target, err := resolvePatchTarget(client, args[0])
			if err != nil {
				return err
			}

			result, err := target.Patch(cmd.Context(), operations)
			if err != nil {
				return err
			}

			return printResult(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&ops, "ops", "", "patch operations as JSON or YAML, or @file")

	return cmd
}

// NewMergeCommand creates the merge command.
func NewMergeCommand() *cobra.Command {
	var value string

	cmd := &cobra.Command{
		Use:   "merge PATH",
		Short: "Merge a value into a collection or entity",
		Long: `Send a single x-merge operation at "/" carrying the given value.
--value takes JSON or YAML, or @file to read it from a file.`,
		Example: `  sparkle merge hosts/h1 --value '{"desired": {"labels": {"tier": "db"}}}'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if value == "" {
				return constants.ErrDataRequired
			}

			var body interface{}

			err := parseInput(value, &body)
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			target, err := resolvePatchTarget(client, args[0])
			if err != nil {
				return err
			}

			result, err := target.Merge(cmd.Context(), body)
			if err != nil {
				return err
			}

			return printResult(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "value to merge as JSON or YAML, or @file")

	return cmd
}
