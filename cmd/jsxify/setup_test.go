package main

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- JSON merge tests ---

func TestMergeServerEntry_EmptyFile(t *testing.T) {
	out, err := mergeServerEntry(nil, "mcpServers", nil)
	require.NoError(t, err)
	require.NotNil(t, out)

	var config map[string]any
	require.NoError(t, json.Unmarshal(out, &config))

	servers := config["mcpServers"].(map[string]any)
	entry := servers["jsxify"].(map[string]any)
	assert.Equal(t, "jsxify", entry["command"])
	assert.Equal(t, []any{"serve"}, entry["args"])
}

func TestMergeServerEntry_ExistingServers(t *testing.T) {
	existing := []byte(`{
  "mcpServers": {
    "other-server": {
      "command": "other",
      "args": ["start"]
    }
  }
}`)
	out, err := mergeServerEntry(existing, "mcpServers", nil)
	require.NoError(t, err)
	require.NotNil(t, out)

	var config map[string]any
	require.NoError(t, json.Unmarshal(out, &config))

	servers := config["mcpServers"].(map[string]any)
	assert.Contains(t, servers, "other-server")
	assert.Contains(t, servers, "jsxify")
}

func TestMergeServerEntry_AlreadyConfigured(t *testing.T) {
	existing := []byte(`{
  "mcpServers": {
    "jsxify": {
      "command": "jsxify",
      "args": ["serve"]
    }
  }
}`)
	out, err := mergeServerEntry(existing, "mcpServers", nil)
	assert.NoError(t, err)
	assert.Nil(t, out, "should return nil when already configured")
}

func TestMergeServerEntry_VSCodeFormat(t *testing.T) {
	out, err := mergeServerEntry(nil, "servers", map[string]string{"type": "stdio"})
	require.NoError(t, err)
	require.NotNil(t, out)

	var config map[string]any
	require.NoError(t, json.Unmarshal(out, &config))

	servers := config["servers"].(map[string]any)
	entry := servers["jsxify"].(map[string]any)
	assert.Equal(t, "jsxify", entry["command"])
	assert.Equal(t, "stdio", entry["type"])
}

func TestMergeServerEntry_InvalidJSON(t *testing.T) {
	_, err := mergeServerEntry([]byte("not json"), "mcpServers", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

// --- Prompt tests ---

func TestPromptYesNo(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"\n", true},
		{"y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"", true}, // EOF defaults to yes
	}
	for _, tc := range cases {
		r := strings.NewReader(tc.input)
		w := &bytes.Buffer{}
		assert.Equal(t, tc.want, promptYesNo(r, w, "Continue?"), "input %q", tc.input)
	}
}

func TestPromptScope(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"1\n", "project"},
		{"2\n", "user"},
		{"3\n", ""},
		{"\n", "project"},
	}
	for _, tc := range cases {
		r := strings.NewReader(tc.input)
		w := &bytes.Buffer{}
		assert.Equal(t, tc.want, promptScope(r, w, "Claude Code"), "input %q", tc.input)
	}
}

// --- Detection tests ---

func stubDetection(t *testing.T, lookPath func(string) (string, error), stat func(string) (os.FileInfo, error)) {
	t.Helper()
	origLookPath := lookPathFunc
	origStat := statFunc
	t.Cleanup(func() {
		lookPathFunc = origLookPath
		statFunc = origStat
	})
	lookPathFunc = lookPath
	statFunc = stat
}

func TestDetectAgents_CLIOnPath(t *testing.T) {
	stubDetection(t,
		func(name string) (string, error) {
			if name == "claude" {
				return "/usr/bin/claude", nil
			}
			return "", exec.ErrNotFound
		},
		func(name string) (os.FileInfo, error) { return nil, os.ErrNotExist },
	)

	found := detectAgents()
	require.Len(t, found, 1)
	assert.Equal(t, "claude_code", found[0].spec.id)
}

func TestDetectAgents_NoneDetected(t *testing.T) {
	stubDetection(t,
		func(name string) (string, error) { return "", exec.ErrNotFound },
		func(name string) (os.FileInfo, error) { return nil, os.ErrNotExist },
	)

	assert.Empty(t, detectAgents())
}

func TestDetectAgents_FileBasedAgent(t *testing.T) {
	stubDetection(t,
		func(name string) (string, error) { return "", exec.ErrNotFound },
		func(name string) (os.FileInfo, error) {
			if name == ".vscode" {
				return nil, nil
			}
			return nil, os.ErrNotExist
		},
	)

	found := detectAgents()
	require.Len(t, found, 1)
	assert.Equal(t, "vscode_copilot", found[0].spec.id)
	assert.Equal(t, filepath.Join(".vscode", "mcp.json"), found[0].configFile)
}

// --- Integration tests ---

func TestExecuteSetup_NoAgents(t *testing.T) {
	stubDetection(t,
		func(name string) (string, error) { return "", exec.ErrNotFound },
		func(name string) (os.FileInfo, error) { return nil, os.ErrNotExist },
	)

	w := &bytes.Buffer{}
	executeSetup(strings.NewReader(""), w, false)
	assert.Contains(t, w.String(), "No supported AI agents detected.")
}

func TestExecuteSetup_AutoModeFileAgent(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(origDir)

	require.NoError(t, os.MkdirAll(".vscode", 0o755))

	stubDetection(t,
		func(name string) (string, error) { return "", exec.ErrNotFound },
		os.Stat, // real stat within the temp dir
	)

	w := &bytes.Buffer{}
	executeSetup(strings.NewReader(""), w, true)

	data, err := os.ReadFile(filepath.Join(".vscode", "mcp.json"))
	require.NoError(t, err)

	var config map[string]any
	require.NoError(t, json.Unmarshal(data, &config))

	servers := config["servers"].(map[string]any)
	entry := servers["jsxify"].(map[string]any)
	assert.Equal(t, "jsxify", entry["command"])
	assert.Equal(t, "stdio", entry["type"])

	assert.Contains(t, w.String(), "VS Code Copilot configured")
}

func TestConfigureFileAgent_CreatesAndMerges(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "sub", "mcp.json")

	spec := agentSpec{serversKey: "mcpServers"}
	require.NoError(t, configureFileAgent(spec, configPath))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)

	var config map[string]any
	require.NoError(t, json.Unmarshal(data, &config))
	servers := config["mcpServers"].(map[string]any)
	assert.Contains(t, servers, "jsxify")
}

func TestConfigureFileAgent_MergesExisting(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "mcp.json")

	existing := []byte(`{"mcpServers": {"other": {"command": "other"}}}`)
	require.NoError(t, os.WriteFile(configPath, existing, 0o644))

	spec := agentSpec{serversKey: "mcpServers"}
	require.NoError(t, configureFileAgent(spec, configPath))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)

	var config map[string]any
	require.NoError(t, json.Unmarshal(data, &config))
	servers := config["mcpServers"].(map[string]any)
	assert.Contains(t, servers, "other", "original server should be preserved")
	assert.Contains(t, servers, "jsxify")
}
