package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fivetwenty-io/sparkle/internal/constants"
	"github.com/fivetwenty-io/sparkle/pkg/sparkle"
	"github.com/fivetwenty-io/sparkle/pkg/sparkleclient"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// patchTarget is implemented by both collections and entities.
type patchTarget interface {
	Patch(ctx context.Context, ops []sparkle.PatchOperation) (interface{}, error)
	Merge(ctx context.Context, value interface{}) (interface{}, error)
	String() string
}

// createClient builds a client from the viper configuration.
func createClient(cmd *cobra.Command) (sparkle.Client, error) {
	token := viper.GetString("token")
	username := viper.GetString("username")
	password := viper.GetString("password")

	if token != "" && password != "" {
		return nil, constants.ErrPasswordWithToken
	}

	if username != "" && password == "" {
		var err error

		password, err = promptPassword(cmd)
		if err != nil {
			return nil, err
		}
	}

	config := &sparkle.Config{
		BaseURI:  viper.GetString("api"),
		Token:    token,
		Username: username,
		Password: password,
	}

	if viper.GetBool("verbose") {
		config.Debug = true
		config.Logger = sparkle.NewHCLogger(hclog.New(&hclog.LoggerOptions{
			Name:   "sparkle",
			Level:  hclog.Debug,
			Output: cmd.ErrOrStderr(),
		}))
	}

	client, err := sparkleclient.New(cmd.Context(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// promptPassword reads a password from the terminal. Without a terminal the
// password stays empty and config validation reports it.
func promptPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd()) // #nosec G115 -- stdin descriptor fits in int
	if !term.IsTerminal(fd) {
		return "", nil
	}

	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Password: ")

	bytePassword, err := term.ReadPassword(fd)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.ErrOrStderr())

	return string(bytePassword), nil
}

func resolveCollection(client sparkle.Client, path string) (sparkle.Collection, error) {
	collection, _, err := sparkleclient.Resolve(client, path)
	if err != nil {
		return nil, err
	}

	if collection == nil {
		return nil, fmt.Errorf("%w: %s", constants.ErrNotACollection, path)
	}

	return collection, nil
}

func resolveEntity(client sparkle.Client, path string) (sparkle.Entity, error) {
	_, entity, err := sparkleclient.Resolve(client, path)
	if err != nil {
		return nil, err
	}

	if entity == nil {
		return nil, fmt.Errorf("%w: %s", constants.ErrNotAnEntity, path)
	}

	return entity, nil
}

func resolvePatchTarget(client sparkle.Client, path string) (patchTarget, error) {
	collection, entity, err := sparkleclient.Resolve(client, path)
	if err != nil {
		return nil, err
	}

	if collection != nil {
		return collection, nil
	}

	return entity, nil
}

// parseInput decodes a JSON or YAML document. A leading "@" names a file to
// read it from.
func parseInput(raw string, target interface{}) error {
	data := []byte(raw)

	if name, ok := strings.CutPrefix(raw, "@"); ok {
		// #nosec G304 -- the user names the file on the command line
		content, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}

		data = content
	}

	err := yaml.Unmarshal(data, target)
	if err != nil {
		return fmt.Errorf("failed to parse input: %w", err)
	}

	return nil
}
