package bridge

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reframe-media/reframe-stack/internal/compose"
	"github.com/reframe-media/reframe-stack/internal/runner"
)

// scriptedRunner hands out canned outcomes in order and records every
// invocation, so bridge tests never launch real processes.
type scriptedRunner struct {
	outcomes []outcome
	calls    []runner.Invocation
}

type outcome struct {
	res *runner.Result
	err error
}

func (s *scriptedRunner) Run(_ context.Context, inv runner.Invocation) (*runner.Result, error) {
	s.calls = append(s.calls, inv)
	if len(s.calls) > len(s.outcomes) {
		return &runner.Result{}, nil
	}
	o := s.outcomes[len(s.calls)-1]
	return o.res, o.err
}

// exitOutcome builds a completed-process outcome with the given status
// and streams.
func exitOutcome(code int, stdout, stderr string) outcome {
	return outcome{res: &runner.Result{
		ExitCode: code,
		Stdout:   []byte(stdout),
		Stderr:   []byte(stderr),
	}}
}

// stackDir creates a Reframe-shaped checkout in a temp dir, makes it the
// working directory, and returns the compose file path the walk resolves.
func stackDir(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	dir := filepath.Join(root, "infra")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "docker-compose.yml")
	content := "services:\n  api: {}\n  worker: {}\n  redis: {}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Chdir(root)

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Join(wd, "infra", "docker-compose.yml")
}

// setup connects a bridge server to a client over in-memory transports
// and returns the client session. The server drives the given stack.
func setup(t *testing.T, st *compose.Stack) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server := NewServer(st, "test")

	ct, srvTransport := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, srvTransport, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = cs.Close()
		_ = ss.Wait()
	})

	return cs
}

// callTool invokes a tool through the client session.
func callTool(t *testing.T, cs *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	return res
}

// resultText flattens a tool result's text content into one string.
func resultText(r *mcp.CallToolResult) string {
	var parts []string
	for _, c := range r.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// TestServer_ListsStackTools registers exactly the five exposed actions,
// under their action names.
func TestServer_ListsStackTools(t *testing.T) {
	cs := setup(t, &compose.Stack{Runner: &scriptedRunner{}})

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t,
		[]string{"docker_version", "compose_file_path", "compose_ps", "compose_up", "compose_down"},
		names)
}

// TestDockerVersionTool returns the probe's merged output as the tool
// result text.
func TestDockerVersionTool(t *testing.T) {
	script := &scriptedRunner{outcomes: []outcome{
		exitOutcome(0, "Docker version 27.3.1, build ce12230\n", ""),
	}}
	cs := setup(t, &compose.Stack{Runner: script})

	res := callTool(t, cs, "docker_version", nil)
	assert.False(t, res.IsError)
	assert.Equal(t, "Docker version 27.3.1, build ce12230", resultText(res))

	require.Len(t, script.calls, 1)
	assert.Equal(t, "docker", script.calls[0].Binary)
	assert.Equal(t, []string{"--version"}, script.calls[0].Args)
}

// TestComposeFilePathTool resolves the compose path without launching any
// process.
func TestComposeFilePathTool(t *testing.T) {
	path := stackDir(t)
	script := &scriptedRunner{}
	cs := setup(t, &compose.Stack{Runner: script})

	res := callTool(t, cs, "compose_file_path", nil)
	assert.False(t, res.IsError)
	assert.Equal(t, path, resultText(res))
	assert.Empty(t, script.calls)
}

// TestComposeFilePathTool_OutsideCheckout surfaces the locator's guidance
// message as an error result, not a protocol error.
func TestComposeFilePathTool_OutsideCheckout(t *testing.T) {
	t.Chdir(t.TempDir())
	cs := setup(t, &compose.Stack{Runner: &scriptedRunner{}})

	res := callTool(t, cs, "compose_file_path", nil)
	assert.True(t, res.IsError)
	assert.Equal(t,
		"could not locate infra/docker-compose.yml; run from inside the project checkout",
		resultText(res))
}

// TestComposeUpTool_BuildArgument maps the optional build argument onto
// the --build/--no-build flag, defaulting to a rebuild when omitted.
func TestComposeUpTool_BuildArgument(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"omitted means build", nil, "--build"},
		{"explicit true", map[string]any{"build": true}, "--build"},
		{"explicit false", map[string]any{"build": false}, "--no-build"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := stackDir(t)
			script := &scriptedRunner{outcomes: []outcome{exitOutcome(0, "started\n", "")}}
			cs := setup(t, &compose.Stack{Runner: script})

			res := callTool(t, cs, "compose_up", tt.args)
			assert.False(t, res.IsError)
			assert.Equal(t, "started", resultText(res))

			require.Len(t, script.calls, 1)
			assert.Equal(t,
				[]string{"compose", "-f", path, "up", "-d", "--remove-orphans", tt.want},
				script.calls[0].Args)
		})
	}
}

// TestComposePSTool_ActionFailure carries a failed action's message as an
// IsError text result, exit code and merged output included.
func TestComposePSTool_ActionFailure(t *testing.T) {
	stackDir(t)
	script := &scriptedRunner{outcomes: []outcome{
		exitOutcome(1, "", "container X exited with code 137"),
	}}
	cs := setup(t, &compose.Stack{Runner: script})

	res := callTool(t, cs, "compose_ps", nil)
	assert.True(t, res.IsError)
	assert.Equal(t, "Command failed (exit 1)\ncontainer X exited with code 137", resultText(res))

	// A genuine compose failure is not retried with the legacy binary.
	assert.Len(t, script.calls, 1)
}

// TestComposeDownTool runs compose down in the compose file's parent
// directory.
func TestComposeDownTool(t *testing.T) {
	path := stackDir(t)
	script := &scriptedRunner{outcomes: []outcome{
		exitOutcome(0, "Removing network reframe_default\n", ""),
	}}
	cs := setup(t, &compose.Stack{Runner: script})

	res := callTool(t, cs, "compose_down", nil)
	assert.False(t, res.IsError)
	assert.Equal(t, "Removing network reframe_default", resultText(res))

	require.Len(t, script.calls, 1)
	assert.Equal(t, []string{"compose", "-f", path, "down"}, script.calls[0].Args)
	assert.Equal(t, filepath.Dir(path), script.calls[0].Dir)
}

// TestInstructions_Embedded ships non-empty host instructions naming each
// tool.
func TestInstructions_Embedded(t *testing.T) {
	for _, name := range []string{"docker_version", "compose_file_path", "compose_ps", "compose_up", "compose_down"} {
		assert.Contains(t, Instructions, name)
	}
}
