// Package domain contains the core models of a workspace: dependency references,
// configuration hierarchies, resolved closures and build graphs.
package domain

import "strings"

const (
	// DefaultConfiguration is the workspace-wide configuration name used when none is given.
	DefaultConfiguration = "full-build"

	// CurrentBranchPlaceholder in a forced-branch list stands for the root module's current branch.
	CurrentBranchPlaceholder = "$CURRENT_BRANCH"

	// AnyValue in a removal directive matches any treeish or configuration.
	AnyValue = "*"
)

// Dep is a reference to a module, optionally pinned to a treeish and a configuration.
// An empty Treeish or Configuration means the value was not specified.
type Dep struct {
	Name          string
	Treeish       string
	Configuration string
}

// ParseDep parses a dependency line of the form name[@treeish][/configuration]
// (the two suffixes may appear in either order). A leading '-' marks a removal
// directive and is reported separately. '@' and '/' preceded by a backslash
// are part of the segment they appear in.
func ParseDep(line string) (Dep, bool) {
	line = strings.TrimSpace(line)
	removal := strings.HasPrefix(line, "-")
	if removal {
		line = strings.TrimSpace(line[1:])
	}

	at, slash := -1, -1
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c != '@' && c != '/' {
			continue
		}
		if i > 0 && line[i-1] == '\\' {
			continue
		}
		if c == '@' {
			at = i
		} else {
			slash = i
		}
	}

	var name, treeish, configuration string
	switch {
	case at < 0 && slash < 0:
		name = line
	case slash < 0:
		name, treeish = line[:at], line[at+1:]
	case at < 0:
		name, configuration = line[:slash], line[slash+1:]
	case at < slash:
		name, treeish, configuration = line[:at], line[at+1:slash], line[slash+1:]
	default:
		name, configuration, treeish = line[:slash], line[slash+1:at], line[at+1:]
	}

	return Dep{
		Name:          unescape(name),
		Treeish:       unescape(treeish),
		Configuration: unescape(configuration),
	}, removal
}

// FormatDep renders dep back into its textual form, escaping delimiters.
func FormatDep(dep Dep) string {
	var b strings.Builder
	b.WriteString(escape(dep.Name))
	if dep.Treeish != "" {
		b.WriteByte('@')
		b.WriteString(escape(dep.Treeish))
	}
	if dep.Configuration != "" {
		b.WriteByte('/')
		b.WriteString(escape(dep.Configuration))
	}
	return b.String()
}

// String implements fmt.Stringer.
func (d Dep) String() string {
	return FormatDep(d)
}

// Key identifies the (module, configuration) pair regardless of treeish.
func (d Dep) Key() string {
	return FormatDep(Dep{Name: d.Name, Configuration: d.Configuration})
}

// WithoutTreeish returns a copy of d with the treeish cleared.
func (d Dep) WithoutTreeish() Dep {
	d.Treeish = ""
	return d
}

var (
	escaper   = strings.NewReplacer("@", `\@`, "/", `\/`)
	unescaper = strings.NewReplacer(`\@`, "@", `\/`, "/")
)

func escape(s string) string {
	return escaper.Replace(s)
}

func unescape(s string) string {
	return strings.TrimSpace(unescaper.Replace(s))
}
