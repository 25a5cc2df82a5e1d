// Package prerequisites checks the local environment the automation runs in:
// required client tools with minimum versions, project files, and leftover
// placeholder values in configuration.
package prerequisites

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/go-version"
)

// Tool represents a client tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// MinVersion is the lowest accepted version. Empty accepts any version.
	MinVersion string

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string
}

// DefaultTools returns the tools the underlay playbooks and config workflow need.
func DefaultTools() []Tool {
	return []Tool{
		{
			Name:        "ansible",
			Required:    true,
			MinVersion:  "2.12",
			Description: "Required for underlay and authentication playbooks",
			InstallURL:  "https://docs.ansible.com/ansible/latest/installation_guide/",
		},
		{
			Name:        "ansible-playbook",
			Required:    true,
			MinVersion:  "2.12",
			Description: "Required for running the deployment playbooks",
			InstallURL:  "https://docs.ansible.com/ansible/latest/installation_guide/",
		},
		{
			Name:        "git",
			Required:    true,
			Description: "Required for versioning deployment documents",
			InstallURL:  "https://git-scm.com/downloads",
		},
	}
}

// OptionalTools returns tools that are useful but not required.
func OptionalTools() []Tool {
	return []Tool{
		{
			Name:        "python3",
			Required:    false,
			MinVersion:  "3.8",
			Description: "Used by Ansible modules on the control node",
			InstallURL:  "https://www.python.org/downloads/",
		},
		{
			Name:        "ansible-galaxy",
			Required:    false,
			Description: "Installs the cisco.ios and cisco.dnac collections",
			InstallURL:  "https://docs.ansible.com/ansible/latest/cli/ansible-galaxy.html",
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string

	// TooOld is set when the detected version is below Tool.MinVersion.
	TooOld bool
}

// OK reports whether the tool is usable.
func (r CheckResult) OK() bool {
	return r.Found && !r.TooOld
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tool is missing or too old.
func (r *CheckResults) HasErrors() bool {
	return r.Error() != nil
}

// Error returns an error if any required tools are missing or too old.
func (r *CheckResults) Error() error {
	var problems []string
	for _, res := range r.Results {
		if !res.Tool.Required {
			continue
		}
		switch {
		case !res.Found:
			problems = append(problems, fmt.Sprintf("%s missing (%s)", res.Tool.Name, res.Tool.InstallURL))
		case res.TooOld:
			problems = append(problems, fmt.Sprintf("%s %s is older than %s", res.Tool.Name, res.Version, res.Tool.MinVersion))
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("required tools not usable: %s", strings.Join(problems, ", "))
}

// lookPath and versionOutput are package-level variables to allow mocking in tests.
var (
	lookPath      = exec.LookPath
	versionOutput = runVersion
)

// Check verifies that the specified tools are available.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := lookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			result.Version = getToolVersion(tool.Name)
			result.TooOld = belowMinimum(result.Version, tool.MinVersion)
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// CheckAll checks all tools (default + optional).
func CheckAll() *CheckResults {
	defaults := DefaultTools()
	optional := OptionalTools()
	all := make([]Tool, 0, len(defaults)+len(optional))
	all = append(all, defaults...)
	all = append(all, optional...)
	return Check(all)
}

var versionPattern = regexp.MustCompile(`\d+(\.\d+)+`)

// ParseVersion extracts the first dotted version number from tool output,
// such as "ansible [core 2.15.3]" or "Python 3.11.4".
func ParseVersion(output string) (*version.Version, error) {
	match := versionPattern.FindString(output)
	if match == "" {
		return nil, fmt.Errorf("no version number in %q", output)
	}
	return version.NewVersion(match)
}

// belowMinimum reports whether detected is older than minimum. Unknown
// versions are not treated as too old.
func belowMinimum(detected, minimum string) bool {
	if minimum == "" || detected == "" {
		return false
	}
	have, err := ParseVersion(detected)
	if err != nil {
		return false
	}
	want, err := version.NewVersion(minimum)
	if err != nil {
		return false
	}
	return have.LessThan(want)
}

// getToolVersion attempts to get the version of a tool.
// Returns empty string if version cannot be determined.
func getToolVersion(name string) string {
	versionFlags := []string{"--version", "version", "-v"}

	for _, flag := range versionFlags {
		output, err := versionOutput(name, flag)
		if err == nil {
			lines := strings.Split(output, "\n")
			if len(lines) > 0 {
				return strings.TrimSpace(lines[0])
			}
		}
	}

	return ""
}

func runVersion(name, flag string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// #nosec G204 - name comes from trusted Tool definitions, not user input
	output, err := exec.CommandContext(ctx, name, flag).Output()
	return string(output), err
}
