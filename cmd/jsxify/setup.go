package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// agentSpec describes one AI agent that can host the MCP server: either a
// CLI that registers servers itself, or a JSON config file to merge into.
type agentSpec struct {
	id          string
	displayName string
	binary      string            // CLI agents: binary on PATH; empty for file agents
	dirMarkers  []string          // file agents: dirs whose presence means "installed"
	configPath  func() string     // file agents: resolved config file path
	serversKey  string            // "servers" (VS Code) or "mcpServers"
	extraFields map[string]string // extra JSON fields on the server entry
}

func (a agentSpec) isCLI() bool { return a.binary != "" }

// Replaceable for testing.
var lookPathFunc = exec.LookPath
var statFunc = os.Stat

var knownAgents = []agentSpec{
	{id: "claude_code", displayName: "Claude Code", binary: "claude"},
	{id: "openai_codex", displayName: "OpenAI Codex", binary: "codex"},
	{
		id: "vscode_copilot", displayName: "VS Code Copilot",
		dirMarkers:  []string{".vscode"},
		configPath:  func() string { return filepath.Join(".vscode", "mcp.json") },
		serversKey:  "servers",
		extraFields: map[string]string{"type": "stdio"},
	},
	{
		id: "cursor", displayName: "Cursor",
		dirMarkers: []string{".cursor"},
		configPath: func() string { return filepath.Join(".cursor", "mcp.json") },
		serversKey: "mcpServers",
	},
	{
		id: "claude_desktop", displayName: "Claude Desktop",
		configPath: claudeDesktopConfigPath,
		serversKey: "mcpServers",
	},
}

func claudeDesktopConfigPath() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Claude", "claude_desktop_config.json")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Claude", "claude_desktop_config.json")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "Claude", "claude_desktop_config.json")
	}
}

// foundAgent is an agent present on this machine.
type foundAgent struct {
	spec       agentSpec
	configured bool
	configFile string // resolved path for file agents
}

// detectAgents scans for installed agents.
func detectAgents() []foundAgent {
	var found []foundAgent
	for _, spec := range knownAgents {
		if spec.isCLI() {
			if _, err := lookPathFunc(spec.binary); err == nil {
				found = append(found, foundAgent{
					spec:       spec,
					configured: hasServerEntry(".mcp.json", "mcpServers"),
				})
			}
			continue
		}

		present := false
		for _, marker := range spec.dirMarkers {
			if _, err := statFunc(marker); err == nil {
				present = true
				break
			}
		}
		configFile := ""
		if spec.configPath != nil {
			configFile = spec.configPath()
		}
		// Agents without project markers (Claude Desktop) count as present
		// when their config parent directory exists.
		if !present && len(spec.dirMarkers) == 0 && configFile != "" {
			if _, err := statFunc(filepath.Dir(configFile)); err == nil {
				present = true
			}
		}
		if present {
			found = append(found, foundAgent{
				spec:       spec,
				configured: hasServerEntry(configFile, spec.serversKey),
				configFile: configFile,
			})
		}
	}
	return found
}

// hasServerEntry reports whether a jsxify entry already exists under
// serversKey in the given JSON config file.
func hasServerEntry(configPath, serversKey string) bool {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return false
	}
	var config map[string]any
	if err := json.Unmarshal(data, &config); err != nil {
		return false
	}
	servers, ok := config[serversKey].(map[string]any)
	if !ok {
		return false
	}
	_, exists := servers["jsxify"]
	return exists
}

// mergeServerEntry adds a jsxify entry under serversKey in existing JSON
// (created if empty). Returns nil, nil when the entry already exists.
func mergeServerEntry(existing []byte, serversKey string, extra map[string]string) ([]byte, error) {
	config := make(map[string]any)
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &config); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	}

	servers, ok := config[serversKey].(map[string]any)
	if !ok {
		servers = make(map[string]any)
	}
	if _, exists := servers["jsxify"]; exists {
		return nil, nil
	}

	entry := map[string]any{
		"command": "jsxify",
		"args":    []any{"serve"},
	}
	for k, v := range extra {
		entry[k] = v
	}
	servers["jsxify"] = entry
	config[serversKey] = servers

	out, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func configureCLIAgent(spec agentSpec, scope string) error {
	args := []string{"mcp", "add"}
	if scope != "" {
		args = append(args, "--scope", scope)
	}
	args = append(args, "jsxify", "--", "jsxify", "serve")
	cmd := exec.Command(spec.binary, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func configureFileAgent(spec agentSpec, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	var existing []byte
	if data, err := os.ReadFile(configPath); err == nil {
		existing = data
	}
	merged, err := mergeServerEntry(existing, spec.serversKey, spec.extraFields)
	if err != nil {
		return err
	}
	if merged == nil {
		return nil
	}
	return os.WriteFile(configPath, merged, 0o644)
}

// promptYesNo reads Y/n; yes is the default, also on EOF.
func promptYesNo(r io.Reader, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s ", question)
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return true
	}
	answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return answer == "" || answer == "y" || answer == "yes"
}

// promptScope returns "project", "user", or "" to skip.
func promptScope(r io.Reader, w io.Writer, agentName string) string {
	fmt.Fprintf(w, "\n%s: add jsxify MCP server?\n", agentName)
	fmt.Fprintln(w, "  [1] Project scope (shared with team)")
	fmt.Fprintln(w, "  [2] User scope (personal, global)")
	fmt.Fprintln(w, "  [3] Skip")
	fmt.Fprintf(w, "  > ")

	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return "project"
	}
	switch strings.TrimSpace(scanner.Text()) {
	case "1", "":
		return "project"
	case "2":
		return "user"
	default:
		return ""
	}
}

// runSetup is the entry point for `jsxify setup`. --auto skips prompts and
// configures every detected agent at project scope.
func runSetup(args []string) {
	auto := false
	for _, arg := range args {
		if arg == "--auto" {
			auto = true
		}
	}
	executeSetup(os.Stdin, os.Stdout, auto)
}

// executeSetup is the testable core, parameterized on I/O.
func executeSetup(r io.Reader, w io.Writer, auto bool) {
	found := detectAgents()
	if len(found) == 0 {
		fmt.Fprintln(w, "No supported AI agents detected.")
		return
	}

	fmt.Fprintln(w, "Detected AI agents:")
	for _, f := range found {
		if f.configured {
			fmt.Fprintf(w, "  * %s (already configured)\n", f.spec.displayName)
		} else {
			fmt.Fprintf(w, "  * %s\n", f.spec.displayName)
		}
	}
	fmt.Fprintln(w)

	if !auto && !promptYesNo(r, w, "Configure agents? [Y/n]") {
		return
	}

	for _, f := range found {
		if f.configured {
			fmt.Fprintf(w, "\n%s: already configured, skipping\n", f.spec.displayName)
			continue
		}
		configureAgent(r, w, f, auto)
	}
}

func configureAgent(r io.Reader, w io.Writer, f foundAgent, auto bool) {
	if f.spec.isCLI() {
		scope := "project"
		if !auto {
			scope = promptScope(r, w, f.spec.displayName)
			if scope == "" {
				fmt.Fprintf(w, "  skipped\n")
				return
			}
		}
		if err := configureCLIAgent(f.spec, scope); err != nil {
			fmt.Fprintf(w, "  ! %s: failed: %v\n", f.spec.displayName, err)
			return
		}
		fmt.Fprintf(w, "  + %s configured (scope: %s)\n", f.spec.displayName, scope)
		return
	}

	if !auto {
		if !promptYesNo(r, w, fmt.Sprintf("\n%s: add to %s? [Y/n]", f.spec.displayName, f.configFile)) {
			fmt.Fprintf(w, "  skipped\n")
			return
		}
	}
	if err := configureFileAgent(f.spec, f.configFile); err != nil {
		fmt.Fprintf(w, "  ! %s: failed: %v\n", f.spec.displayName, err)
		return
	}
	fmt.Fprintf(w, "  + %s configured (%s)\n", f.spec.displayName, f.configFile)
}
