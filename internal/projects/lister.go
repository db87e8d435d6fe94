package projects

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	gitMetadataDirectoryNameConstant = ".git"
	finderMetadataFileNameConstant   = ".DS_Store"

	noProjectsFoundMessageConstant     = "no projects found"
	projectsRootUnreadableTemplate     = "projects root unreadable: %w"
	projectsRootResolutionTemplate     = "resolve projects root: %w"
	projectNotFoundTemplateConstant    = "project %q is not one of the available projects"
	projectNameRequiredMessageConstant = "project name must be provided"
)

// ErrNoProjectsFound indicates that the projects root holds no eligible directories.
var ErrNoProjectsFound = errors.New(noProjectsFoundMessageConstant)

// ErrProjectNameRequired indicates an empty project selection.
var ErrProjectNameRequired = errors.New(projectNameRequiredMessageConstant)

// Lister enumerates project directories, skipping excluded names.
type Lister struct {
	excludedNames map[string]struct{}
}

// NewLister builds a Lister that always skips VCS metadata, OS artifacts, and toolDirectoryName,
// plus any additionalExclusions.
func NewLister(toolDirectoryName string, additionalExclusions ...string) *Lister {
	excludedNames := map[string]struct{}{
		gitMetadataDirectoryNameConstant: {},
		finderMetadataFileNameConstant:   {},
	}
	for _, excludedName := range append([]string{toolDirectoryName}, additionalExclusions...) {
		trimmedName := strings.TrimSpace(excludedName)
		if len(trimmedName) == 0 {
			continue
		}
		excludedNames[trimmedName] = struct{}{}
	}
	return &Lister{excludedNames: excludedNames}
}

// ListProjects returns the sorted names of the eligible directories directly under root.
func (lister *Lister) ListProjects(root string) ([]string, error) {
	entries, readError := os.ReadDir(root)
	if readError != nil {
		return nil, fmt.Errorf(projectsRootUnreadableTemplate, readError)
	}

	projectNames := make([]string, 0, len(entries))
	for _, entry := range entries {
		if _, excluded := lister.excludedNames[entry.Name()]; excluded {
			continue
		}
		if !entry.IsDir() {
			continue
		}
		projectNames = append(projectNames, entry.Name())
	}

	if len(projectNames) == 0 {
		return nil, ErrNoProjectsFound
	}

	sort.Strings(projectNames)
	return projectNames, nil
}

// ResolveSelection confirms that projectName is one of the available projects.
func ResolveSelection(availableProjects []string, projectName string) (string, error) {
	trimmedName := strings.TrimSpace(projectName)
	if len(trimmedName) == 0 {
		return "", ErrProjectNameRequired
	}
	for _, availableProject := range availableProjects {
		if availableProject == trimmedName {
			return availableProject, nil
		}
	}
	return "", fmt.Errorf(projectNotFoundTemplateConstant, trimmedName)
}

// DefaultRoot returns the parent of workingDirectory together with the name of workingDirectory,
// which is the tool directory excluded from the listing.
func DefaultRoot(workingDirectory string) (string, string, error) {
	absolutePath, absoluteError := filepath.Abs(workingDirectory)
	if absoluteError != nil {
		return "", "", fmt.Errorf(projectsRootResolutionTemplate, absoluteError)
	}
	return filepath.Dir(absolutePath), filepath.Base(absolutePath), nil
}
