//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	API        string
	Token      string
	Collection string
	ExtraData  map[string]interface{}
	BinaryPath string
	Verbose    bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	config := &TestConfig{
		API:        os.Getenv("SPARKLE_API"),
		Token:      os.Getenv("SPARKLE_TOKEN"),
		Collection: os.Getenv("SPARKLE_TEST_COLLECTION"),
		ExtraData:  map[string]interface{}{},
		BinaryPath: getBinaryPath(),
		Verbose:    os.Getenv("SPARKLE_VERBOSE") == "true",
	}

	// Extra fields the API requires on a new entity, as JSON.
	if extra := os.Getenv("SPARKLE_TEST_DATA"); extra != "" {
		_ = json.Unmarshal([]byte(extra), &config.ExtraData)
	}

	return config
}

// getBinaryPath determines the path to the sparkle binary
func getBinaryPath() string {
	if path := os.Getenv("SPARKLE_BINARY_PATH"); path != "" {
		return path
	}

	// Try common locations
	candidates := []string{
		"../../sparkle",
		"./sparkle",
		"../sparkle",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "sparkle" // Fallback to PATH
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.API == "" {
		t.Skip("SPARKLE_API not set, skipping integration test")
	}

	if config.Collection == "" {
		t.Skip("SPARKLE_TEST_COLLECTION not set, skipping integration test")
	}
}

// SkipIfMissingBinary skips test if the CLI binary cannot be found
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(config.BinaryPath); err != nil {
		t.Skipf("sparkle binary not found at %s, skipping integration test", config.BinaryPath)
	}
}

// EntityData returns a creation body keyed by pkey.
func (config *TestConfig) EntityData(pkey, key string) map[string]interface{} {
	data := make(map[string]interface{}, len(config.ExtraData)+1)
	for k, v := range config.ExtraData {
		data[k] = v
	}

	data[pkey] = key

	return data
}

// CommandRunner provides utilities for running sparkle commands
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes a sparkle command against the configured API
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	full := append([]string{"--api", runner.config.API}, args...)
	if runner.config.Token != "" {
		full = append([]string{"--token", runner.config.Token}, full...)
	}

	// #nosec G204 -- test binary path comes from the test environment
	cmd := exec.Command(runner.config.BinaryPath, full...)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.BinaryPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// CleanupEntity attempts to delete a test entity
func (runner *CommandRunner) CleanupEntity(path string) {
	stdout, stderr, err := runner.Run("delete", path)
	if err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup warning for %s: %s\nStderr: %s", path, stdout, stderr)
	}
}

// GenerateTestName creates a unique test resource name
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// AssertJSONOutput verifies command output is valid JSON
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	if !json.Valid([]byte(strings.TrimSpace(output))) {
		t.Errorf("Output is not JSON: %s", output)
	}
}

// AssertYAMLOutput verifies command output is valid YAML
func AssertYAMLOutput(t *testing.T, output string) {
	t.Helper()

	var value interface{}

	if err := yaml.Unmarshal([]byte(output), &value); err != nil {
		t.Errorf("Output is not YAML: %v\n%s", err, output)
	}
}
