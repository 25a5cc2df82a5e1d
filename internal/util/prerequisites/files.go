package prerequisites

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathCheck is a file or directory expected in the project.
type PathCheck struct {
	Path        string
	Description string
	Dir         bool
	Required    bool
}

// PathResult is the outcome of one PathCheck.
type PathResult struct {
	Check PathCheck
	Found bool
}

// DefaultPaths returns the project layout the deployment workflow expects.
func DefaultPaths() []PathCheck {
	return []PathCheck{
		{Path: "config", Description: "Configuration directory", Dir: true, Required: true},
		{Path: "config/fabric-config.json", Description: "Fabric configuration", Required: true},
		{Path: "config/ise-config.json", Description: "ISE configuration", Required: true},
		{Path: "ansible", Description: "Ansible directory", Dir: true, Required: true},
		{Path: "ansible/inventory/hosts.yml", Description: "Ansible inventory", Required: true},
		{Path: "ansible/group_vars/all.yml", Description: "Ansible variables", Required: true},
		{Path: "ansible/group_vars/vault.yml", Description: "Ansible vault", Required: false},
		{Path: ".gitignore", Description: "Git ignore file", Required: false},
	}
}

// CheckPaths resolves every check relative to root.
func CheckPaths(root string, checks []PathCheck) []PathResult {
	results := make([]PathResult, 0, len(checks))
	for _, c := range checks {
		info, err := os.Stat(filepath.Join(root, c.Path))
		found := err == nil && info.IsDir() == c.Dir
		results = append(results, PathResult{Check: c, Found: found})
	}
	return results
}

// MissingRequired returns an error listing required paths that were not found.
func MissingRequired(results []PathResult) error {
	var missing []string
	for _, r := range results {
		if r.Check.Required && !r.Found {
			missing = append(missing, r.Check.Path)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required paths: %s", strings.Join(missing, ", "))
}

// DefaultPlaceholders are example addresses shipped with the sample inventory.
var DefaultPlaceholders = []string{"10.1.1.10", "10.2.1.1"}

// Warning is an informational finding that does not fail the check.
type Warning struct {
	Path    string
	Line    int
	Message string
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", w.Path, w.Line, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Path, w.Message)
}

// ScanPlaceholders reports every line of the file at path containing one of
// the placeholder values. A missing file yields no warnings.
func ScanPlaceholders(path string, placeholders []string) ([]Warning, error) {
	f, err := os.Open(path) // #nosec G304 - path is a project file chosen by the operator
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var warnings []Warning
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		for _, p := range placeholders {
			if strings.Contains(scanner.Text(), p) {
				warnings = append(warnings, Warning{
					Path:    path,
					Line:    line,
					Message: fmt.Sprintf("contains example address %s", p),
				})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return warnings, nil
}

// CheckGitignore warns when the ignore file at path does not cover secrets.
func CheckGitignore(path string) []Warning {
	data, err := os.ReadFile(path) // #nosec G304 - path is a project file chosen by the operator
	if err != nil {
		return []Warning{{Path: path, Message: "not found"}}
	}
	var warnings []Warning
	for _, entry := range []string{".env", ".vault_pass"} {
		if !strings.Contains(string(data), entry) {
			warnings = append(warnings, Warning{Path: path, Message: "should ignore " + entry})
		}
	}
	return warnings
}
