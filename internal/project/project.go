// Package project reads and writes RPG projects: a directory holding a
// project.json file with the project's metadata and its startup routine.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/rpgbaker/internal/descriptor"
	"golang.org/x/mod/semver"
)

// FileName is the name of the file that marks a directory as a project.
const FileName = "project.json"

// Project is an RPG project saved on disk.
type Project struct {
	// BasePath is the directory the project was loaded from or saved to.
	BasePath string `json:"-"`

	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Authors     []string `json:"authors"`

	// StoryDefinition is kept verbatim; nothing in the engine reads it yet.
	StoryDefinition json.RawMessage    `json:"story_definition,omitempty"`
	StartupRoutine  *descriptor.Recipe `json:"startup_routine"`
}

// New creates a project with default metadata and an empty startup routine
// and saves it into dir, which must already exist.
func New(dir string) (*Project, error) {
	p := &Project{
		Name:           "New Project",
		Version:        "0.0.0",
		Description:    "A new RPG from a handsome game developer!",
		Authors:        []string{"You"},
		StartupRoutine: descriptor.NewRecipe(),
	}
	if err := p.SaveAs(dir); err != nil {
		return nil, err
	}
	return p, nil
}

// IsProjectDir reports whether dir holds a project file.
func IsProjectDir(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, FileName))
	return err == nil && !info.IsDir()
}

// Load reads the project stored in dir.
func Load(dir string) (*Project, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project: %w", err)
	}
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if p.StartupRoutine == nil {
		p.StartupRoutine = descriptor.NewRecipe()
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project %s: %w", path, err)
	}
	p.BasePath = dir
	return &p, nil
}

// Validate checks the project metadata.
func (p *Project) Validate() error {
	var errs []error
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if err := ValidateVersion(p.Version); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ValidateVersion checks that v is a full semantic version such as "1.2.3"
// or "1.2.3-beta.1+build.5", written without a leading "v".
func ValidateVersion(v string) error {
	if strings.HasPrefix(v, "v") {
		return fmt.Errorf("version %q must not start with 'v'", v)
	}
	sv := "v" + v
	if !semver.IsValid(sv) {
		return fmt.Errorf("version %q is not a valid semantic version", v)
	}
	withoutBuild := strings.TrimSuffix(sv, semver.Build(sv))
	if semver.Canonical(sv) != withoutBuild {
		return fmt.Errorf("version %q must have major, minor and patch numbers", v)
	}
	return nil
}

// Save writes the project back to its BasePath.
func (p *Project) Save() error {
	if p.BasePath == "" {
		return errors.New("project has no base path; use SaveAs")
	}
	return p.SaveAs(p.BasePath)
}

// SaveAs writes the project into dir and makes dir its new BasePath.
func (p *Project) SaveAs(dir string) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid project: %w", err)
	}
	if p.StartupRoutine == nil {
		p.StartupRoutine = descriptor.NewRecipe()
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write project: %w", err)
	}
	p.BasePath = dir
	return nil
}

// CompareVersion orders the project's version against another semantic
// version, as semver.Compare does.
func (p *Project) CompareVersion(other string) int {
	return semver.Compare("v"+p.Version, "v"+strings.TrimPrefix(other, "v"))
}
