// Package versioning detects version folders (v1, v2.1, ...) among a directory's
// children and decides which one is promoted as latest.
package versioning

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/sitecontent/internal/content"
	"git.home.luguber.info/inful/sitecontent/internal/routes"
)

var folderPattern = regexp.MustCompile(`^v(\d+)(?:\.(\d+))?$`)

// Folder is a parsed version folder name.
type Folder struct {
	Name  string
	Major int
	Minor int
}

// SortKey orders versions numerically: major*1000 + minor.
func (f Folder) SortKey() int {
	return f.Major*1000 + f.Minor
}

// Parse recognizes a version folder name.
func Parse(name string) (Folder, bool) {
	m := folderPattern.FindStringSubmatch(name)
	if m == nil {
		return Folder{}, false
	}
	major, err := strconv.Atoi(m[1])
	if err != nil {
		return Folder{}, false
	}
	minor := 0
	if m[2] != "" {
		if minor, err = strconv.Atoi(m[2]); err != nil {
			return Folder{}, false
		}
	}
	return Folder{Name: name, Major: major, Minor: minor}, true
}

// IsVersionFolder reports whether name is a version folder.
func IsVersionFolder(name string) bool {
	return folderPattern.MatchString(name)
}

// Scope is the outcome of version detection for one directory.
type Scope struct {
	// Route is the canonical route the latest version is promoted onto.
	Route   string
	Folders []Folder
	Meta    content.VersionMeta
}

// Detect inspects child folder names of a directory whose children live under base.
// It returns nil when no child is a version folder. The latest version is the one
// flagged latest in overrides (the highest such one when several are), otherwise the
// highest version. The latest version's route is the directory's own route; every
// other version lives at base/<name>.
func Detect(base string, names []string, overrides map[string]content.VersionOverride) *Scope {
	var folders []Folder
	for _, n := range names {
		if f, ok := Parse(n); ok {
			folders = append(folders, f)
		}
	}
	if len(folders) == 0 {
		return nil
	}

	slices.SortStableFunc(folders, func(a, b Folder) int {
		if a.SortKey() != b.SortKey() {
			return b.SortKey() - a.SortKey()
		}
		return strings.Compare(a.Name, b.Name)
	})

	latest := folders[0].Name
	for _, f := range folders {
		if overrides[f.Name].Latest {
			latest = f.Name
			break
		}
	}

	scope := &Scope{Route: routes.Display(base), Folders: folders}
	scope.Meta.LatestID = latest
	for _, f := range folders {
		o := overrides[f.Name]
		label := o.Label
		if label == "" {
			label = f.Name
		}
		entry := content.VersionEntry{
			ID:         f.Name,
			Label:      label,
			Latest:     f.Name == latest,
			Deprecated: o.Deprecated,
			Route:      routes.Join(base, f.Name),
		}
		if entry.Latest {
			entry.Route = scope.Route
		}
		scope.Meta.Versions = append(scope.Meta.Versions, entry)
	}
	return scope
}

// Has reports whether name is one of the scope's version folders.
func (s *Scope) Has(name string) bool {
	if s == nil {
		return false
	}
	return slices.ContainsFunc(s.Folders, func(f Folder) bool { return f.Name == name })
}

// IsLatest reports whether name is the promoted version.
func (s *Scope) IsLatest(name string) bool {
	return s != nil && s.Meta.LatestID == name
}
