package content

// VersionEntry is one detected version folder within a versioned scope.
type VersionEntry struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Latest     bool   `json:"latest"`
	Deprecated bool   `json:"deprecated"`
	Route      string `json:"route"`
}

// VersionMeta describes every version available in a scope, newest first.
type VersionMeta struct {
	Versions []VersionEntry `json:"versions"`
	LatestID string         `json:"latestId"`
}

// Latest returns the entry flagged latest.
func (m *VersionMeta) Latest() (VersionEntry, bool) {
	for _, v := range m.Versions {
		if v.ID == m.LatestID {
			return v, true
		}
	}
	return VersionEntry{}, false
}

// VersionOverride is the per-version configuration a directory may declare.
type VersionOverride struct {
	Label      string `yaml:"label" json:"label,omitempty"`
	Latest     bool   `yaml:"latest" json:"latest,omitempty"`
	Deprecated bool   `yaml:"deprecated" json:"deprecated,omitempty"`
}
