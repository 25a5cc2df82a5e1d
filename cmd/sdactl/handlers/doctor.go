package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/imamik/sdactl/internal/config"
	"github.com/imamik/sdactl/internal/util/prerequisites"
)

// DoctorStatus is the outcome of the pre-deployment checks.
type DoctorStatus struct {
	Tools     []ToolStatus     `json:"tools"`
	Paths     []PathStatus     `json:"paths"`
	Documents []DocumentStatus `json:"documents"`
	Warnings  []string         `json:"warnings,omitempty"`
}

// ToolStatus reports one client tool.
type ToolStatus struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
	Found    bool   `json:"found"`
	Version  string `json:"version,omitempty"`
	TooOld   bool   `json:"tooOld,omitempty"`
}

// PathStatus reports one expected project path.
type PathStatus struct {
	Path     string `json:"path"`
	Required bool   `json:"required"`
	Found    bool   `json:"found"`
}

// DocumentStatus reports whether a deployment document loads and validates.
type DocumentStatus struct {
	Path  string `json:"path"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

const (
	fabricDocumentPath = "config/fabric-config.json"
	policyDocumentPath = "config/ise-config.json"
	inventoryPath      = "ansible/inventory/hosts.yml"
)

var (
	// checkTools runs the tool checks (for testing injection).
	checkTools = prerequisites.CheckAll
)

// Doctor checks the client tools, the project layout under dir and the
// deployment documents, then prints the results.
func Doctor(dir string, jsonOutput bool) error {
	status, err := diagnose(dir)

	if jsonOutput {
		data, jerr := json.MarshalIndent(status, "", "  ")
		if jerr != nil {
			return fmt.Errorf("failed to encode status: %w", jerr)
		}
		_, _ = fmt.Fprintln(stdout, string(data))
		return err
	}

	_, _ = fmt.Fprint(stdout, renderDoctor(status))
	return err
}

func diagnose(dir string) (*DoctorStatus, error) {
	status := &DoctorStatus{}
	var errs []error

	tools := checkTools()
	for _, r := range tools.Results {
		status.Tools = append(status.Tools, ToolStatus{
			Name:     r.Tool.Name,
			Required: r.Tool.Required,
			Found:    r.Found,
			Version:  r.Version,
			TooOld:   r.TooOld,
		})
	}
	if err := tools.Error(); err != nil {
		errs = append(errs, err)
	}

	paths := prerequisites.CheckPaths(dir, prerequisites.DefaultPaths())
	for _, r := range paths {
		status.Paths = append(status.Paths, PathStatus{Path: r.Check.Path, Required: r.Check.Required, Found: r.Found})
	}
	if err := prerequisites.MissingRequired(paths); err != nil {
		errs = append(errs, err)
	}

	fabricPath := filepath.Join(dir, fabricDocumentPath)
	fabricDoc, ferr := config.LoadFabricFile(fabricPath)
	status.Documents = append(status.Documents, documentStatus(fabricDocumentPath, ferr))
	if ferr == nil {
		for _, w := range fabricDoc.Lint() {
			status.Warnings = append(status.Warnings, fabricDocumentPath+": "+w)
		}
	}

	policyPath := filepath.Join(dir, policyDocumentPath)
	status.Documents = append(status.Documents, documentStatus(policyDocumentPath, checkPolicyDocument(policyPath)))

	for _, path := range []string{filepath.Join(dir, inventoryPath), fabricPath, policyPath} {
		warnings, err := prerequisites.ScanPlaceholders(path, prerequisites.DefaultPlaceholders)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		status.Warnings = appendWarnings(status.Warnings, dir, warnings)
	}
	status.Warnings = appendWarnings(status.Warnings, dir, prerequisites.CheckGitignore(filepath.Join(dir, ".gitignore")))

	for _, d := range status.Documents {
		if !d.Valid {
			errs = append(errs, fmt.Errorf("%s: %s", d.Path, d.Error))
		}
	}

	return status, errors.Join(errs...)
}

func documentStatus(path string, err error) DocumentStatus {
	if err != nil {
		return DocumentStatus{Path: path, Error: err.Error()}
	}
	return DocumentStatus{Path: path, Valid: true}
}

// checkPolicyDocument validates every section of the policy document, egress
// policies included.
func checkPolicyDocument(path string) error {
	doc, err := config.ReadPolicyFile(path)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("policy document validation failed: %w", err)
	}
	return nil
}

func appendWarnings(out []string, dir string, warnings []prerequisites.Warning) []string {
	for _, w := range warnings {
		if rel, err := filepath.Rel(dir, w.Path); err == nil {
			w.Path = rel
		}
		out = append(out, w.String())
	}
	return out
}

func renderDoctor(status *DoctorStatus) string {
	s := newStyles()
	var b strings.Builder

	mark := func(ok, required bool) string {
		switch {
		case ok:
			return s.green.Render("✓")
		case required:
			return s.red.Render("✗")
		default:
			return s.yellow.Render("!")
		}
	}

	b.WriteString(s.section.Render("Tools"))
	b.WriteString("\n")
	for _, t := range status.Tools {
		detail := t.Version
		switch {
		case !t.Found:
			detail = "not found"
		case t.TooOld:
			detail += " (too old)"
		}
		fmt.Fprintf(&b, "  %s %-18s %s\n", mark(t.Found && !t.TooOld, t.Required), t.Name, s.dim.Render(detail))
	}

	b.WriteString("\n")
	b.WriteString(s.section.Render("Project"))
	b.WriteString("\n")
	for _, p := range status.Paths {
		fmt.Fprintf(&b, "  %s %s\n", mark(p.Found, p.Required), p.Path)
	}

	b.WriteString("\n")
	b.WriteString(s.section.Render("Documents"))
	b.WriteString("\n")
	for _, d := range status.Documents {
		fmt.Fprintf(&b, "  %s %s\n", mark(d.Valid, true), d.Path)
		if d.Error != "" {
			b.WriteString(s.dim.Render("      " + d.Error))
			b.WriteString("\n")
		}
	}

	if len(status.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(s.section.Render("Warnings"))
		b.WriteString("\n")
		for _, w := range status.Warnings {
			b.WriteString("  ")
			b.WriteString(s.yellow.Render("!"))
			b.WriteString(" " + w + "\n")
		}
	}

	return b.String()
}
