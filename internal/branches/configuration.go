package branches

import "strings"

const (
	configurationProjectsRootKeyConstant              = "projects_root"
	configurationProjectKeyConstant                   = "project"
	configurationExcludedProjectsKeyConstant          = "excluded_projects"
	configurationRemoteKeyConstant                    = "remote"
	configurationClosedStatusesKeyConstant            = "closed_statuses"
	configurationMatchKeysWithoutSeparatorKeyConstant = "match_keys_without_separator"
	configurationConcurrencyKeyConstant               = "concurrency"
	configurationDryRunKeyConstant                    = "dry_run"
	configurationKeySeparatorConstant                 = "."
)

// CommandConfiguration captures configuration values for the prune command.
type CommandConfiguration struct {
	ProjectsRoot              string   `mapstructure:"projects_root"`
	Project                   string   `mapstructure:"project"`
	ExcludedProjects          []string `mapstructure:"excluded_projects"`
	RemoteName                string   `mapstructure:"remote"`
	ClosedStatuses            []string `mapstructure:"closed_statuses"`
	MatchKeysWithoutSeparator bool     `mapstructure:"match_keys_without_separator"`
	Concurrency               int      `mapstructure:"concurrency"`
	DryRun                    bool     `mapstructure:"dry_run"`
}

// DefaultCommandConfiguration provides baseline configuration values for the prune command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		ProjectsRoot:              "",
		Project:                   "",
		ExcludedProjects:          nil,
		RemoteName:                DefaultRemoteName,
		ClosedStatuses:            DefaultClosedStatuses(),
		MatchKeysWithoutSeparator: false,
		Concurrency:               DefaultConcurrency,
		DryRun:                    false,
	}
}

// DefaultConfigurationValues exposes the defaults as viper keys under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	trimmedPrefix := strings.TrimSpace(prefix)
	qualify := func(key string) string {
		if len(trimmedPrefix) == 0 {
			return key
		}
		return trimmedPrefix + configurationKeySeparatorConstant + key
	}

	return map[string]any{
		qualify(configurationProjectsRootKeyConstant):              defaults.ProjectsRoot,
		qualify(configurationProjectKeyConstant):                   defaults.Project,
		qualify(configurationExcludedProjectsKeyConstant):          []string{},
		qualify(configurationRemoteKeyConstant):                    defaults.RemoteName,
		qualify(configurationClosedStatusesKeyConstant):            defaults.ClosedStatuses,
		qualify(configurationMatchKeysWithoutSeparatorKeyConstant): defaults.MatchKeysWithoutSeparator,
		qualify(configurationConcurrencyKeyConstant):               defaults.Concurrency,
		qualify(configurationDryRunKeyConstant):                    defaults.DryRun,
	}
}

// Sanitize trims configuration values and restores defaults for empty ones.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.ProjectsRoot = strings.TrimSpace(configuration.ProjectsRoot)
	sanitized.Project = strings.TrimSpace(configuration.Project)
	sanitized.ExcludedProjects = sanitizeValues(configuration.ExcludedProjects)
	sanitized.RemoteName = strings.TrimSpace(configuration.RemoteName)
	if len(sanitized.RemoteName) == 0 {
		sanitized.RemoteName = DefaultRemoteName
	}
	sanitized.ClosedStatuses = sanitizeValues(configuration.ClosedStatuses)
	if len(sanitized.ClosedStatuses) == 0 {
		sanitized.ClosedStatuses = DefaultClosedStatuses()
	}
	if sanitized.Concurrency <= 0 {
		sanitized.Concurrency = DefaultConcurrency
	}

	return sanitized
}

func sanitizeValues(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for _, candidate := range raw {
		trimmed := strings.TrimSpace(candidate)
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}
