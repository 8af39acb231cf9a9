// Package settings loads permission pattern lists from the fixed
// .claude/settings.json locations.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/FortiumPartners/ensemble-sub005/internal/logging"
)

// Settings holds the effective allow and deny pattern lists: the
// concatenation, in priority order, of every readable settings file.
// Duplicates are retained; there are no override semantics between files.
type Settings struct {
	Allow []string
	Deny  []string
}

// settingsFile mirrors the on-disk shape:
// { "permissions": { "allow": [...], "deny": [...] } }.
type settingsFile struct {
	Permissions struct {
		Allow patternList `json:"allow"`
		Deny  patternList `json:"deny"`
	} `json:"permissions"`
}

// patternList tolerates sloppy settings files: any value that is not a JSON
// array of strings decodes to empty rather than failing the file.
type patternList []string

func (l *patternList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		*l = nil
		return nil
	}
	*l = items
	return nil
}

// Paths returns the candidate settings files in strict priority order:
// project-local, project, then global.
func Paths(projectDir, homeDir string) []string {
	return []string{
		filepath.Join(projectDir, ".claude", "settings.local.json"),
		filepath.Join(projectDir, ".claude", "settings.json"),
		filepath.Join(homeDir, ".claude", "settings.json"),
	}
}

// Load reads every readable settings file and unions the lists. A missing
// file is normal; a malformed one is logged and skipped without blocking
// the remaining files. Load never fails and never caches: settings are
// re-read on every call so an edit takes effect on the next check.
func Load(projectDir, homeDir string) Settings {
	var s Settings
	for _, path := range Paths(projectDir, homeDir) {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var f settingsFile
		// jsonc first: settings files in the wild carry // comments
		if err := json.Unmarshal(jsonc.ToJSON(data), &f); err != nil {
			logging.Warn().Str("path", path).Err(err).Msg("skipping malformed settings file")
			continue
		}
		s.Allow = append(s.Allow, f.Permissions.Allow...)
		s.Deny = append(s.Deny, f.Permissions.Deny...)
	}
	return s
}

// LoadDefault loads settings for projectDir, resolving the home directory
// from the environment. An empty projectDir means the working directory.
func LoadDefault(projectDir string) Settings {
	if projectDir == "" {
		projectDir, _ = os.Getwd()
	}
	home, _ := os.UserHomeDir()
	return Load(projectDir, home)
}
