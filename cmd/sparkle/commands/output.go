package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fivetwenty-io/sparkle/internal/constants"
	"github.com/fivetwenty-io/sparkle/pkg/sparkle"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func outputFormat() (string, error) {
	format := viper.GetString("output")
	switch format {
	case "", constants.FormatTable:
		return constants.FormatTable, nil
	case constants.FormatJSON, constants.FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %s", constants.ErrInvalidOutput, format)
	}
}

// encode writes data as JSON or YAML. It reports false for the table format.
func encode(w io.Writer, format string, data interface{}) (bool, error) {
	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", constants.OutputIndentSize))

		return true, encoder.Encode(data)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(constants.OutputIndentSize)

		defer func() { _ = encoder.Close() }()

		return true, encoder.Encode(data)
	default:
		return false, nil
	}
}

// printResult writes the body returned by a mutation.
func printResult(w io.Writer, data interface{}) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	if raw, ok := data.([]byte); ok {
		_, err = w.Write(raw)

		return err
	}

	done, err := encode(w, format, data)
	if done || err != nil {
		return err
	}

	fields, ok := data.(map[string]interface{})
	if !ok {
		_, err = fmt.Fprintln(w, formatValue(data))

		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Field", "Value")

	for _, key := range sortedKeys(fields) {
		_ = table.Append(key, formatValue(fields[key]))
	}

	return renderTable(table)
}

// printRepresentation writes an entity's desired and current state side by
// side.
func printRepresentation(w io.Writer, rep *sparkle.Representation) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	done, err := encode(w, format, rep)
	if done || err != nil {
		return err
	}

	keys := map[string]bool{}
	for k := range rep.Desired {
		keys[k] = true
	}

	for k := range rep.Current {
		keys[k] = true
	}

	names := make([]string, 0, len(keys))
	for k := range keys {
		names = append(names, k)
	}

	sort.Strings(names)

	table := tablewriter.NewWriter(w)
	table.Header("Field", "Desired", "Current")

	for _, name := range names {
		_ = table.Append(name, stateValue(rep.Desired, name), stateValue(rep.Current, name))
	}

	return renderTable(table)
}

func stateValue(state map[string]interface{}, key string) string {
	value, ok := state[key]
	if !ok {
		return constants.NotAvailable
	}

	return formatValue(value)
}

// formatValue renders strings bare and everything else as compact JSON.
func formatValue(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}

	return string(data)
}

func sortedKeys(fields map[string]interface{}) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

func renderTable(table *tablewriter.Table) error {
	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
