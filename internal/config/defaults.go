package config

import "time"

// GetDefaultConfigTemplate returns a commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# changelogmd configuration
# Environment variables override these keys: CHANGELOGMD_<KEY>, e.g. CHANGELOGMD_OWNER_REPO

changelog_path: CHANGELOG.md          # Changelog edited when --file is not given
owner_repo: ""                        # GitHub owner/repo for link references
detect_remote: true                   # Read owner/repo from the git remote when unset
remote_name: origin                   # Remote consulted by detect_remote

plain: false                          # Disable colors and icons
output_format: text                   # validate report format: text | json | yaml
jobs: 4                               # Files validated concurrently (1-64)
watch_debounce: 200ms                 # Quiet period before re-validating in --watch
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog_path": "CHANGELOG.md",
		"owner_repo":     "",
		"detect_remote":  true,
		"remote_name":    "origin",
		"plain":          false,
		"output_format":  "text",
		"jobs":           4,
		// watch_debounce: editors often write a file in several steps
		"watch_debounce": (200 * time.Millisecond).String(),
	}
}
