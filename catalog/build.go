package catalog

import (
	"sort"
	"strings"
)

// SortOrder selects how group roots are ordered in the built catalog
// Any other value leaves the roots in discovery order
type SortOrder string

const (
	SortNameAscending  SortOrder = "name-asc"
	SortNameDescending SortOrder = "name-desc"
)

// Group is one presentable unit; a rootable title plus all of its owned content
type Group struct {
	Root    Entry   `json:"root"`
	Updates []Entry `json:"updates,omitempty"`
	DLC     []Entry `json:"dlc,omitempty"`
}

// Files returns the group contents flattened, root first
func (g *Group) Files() []Entry {
	values := make([]Entry, 0, 1+len(g.Updates)+len(g.DLC))
	values = append(values, g.Root)
	values = append(values, g.Updates...)
	values = append(values, g.DLC...)
	return values
}

func canRoot(role Role) bool {
	return role == RoleBase || role == RoleUnknown
}

// Build groups entries under their owning base titles and orders the result
// Children are matched against the complete input, independent of the
// hide-invalid switch, so a valid base title always lists all of its
// updates and DLC. Children whose parent id matches no root are dropped;
// thats expected for content whose base title isn't present here
func Build(entries []Entry, hideInvalid bool, order SortOrder) []Group {
	roots := make([]Entry, 0, len(entries))
	seen := make(map[uint64]bool, len(entries))
	for _, entry := range entries {
		if !canRoot(entry.Role) || !Accept(entry, hideInvalid) {
			continue
		}
		if entry.TitleID != 0 {
			// Keep the first copy of a duplicated base id, otherwise its
			// children would show up under every copy
			if seen[entry.TitleID] {
				continue
			}
			seen[entry.TitleID] = true
		}
		roots = append(roots, entry)
	}

	switch order {
	case SortNameAscending:
		sort.SliceStable(roots, func(i, j int) bool {
			return strings.Compare(roots[i].Name, roots[j].Name) < 0
		})
	case SortNameDescending:
		sort.SliceStable(roots, func(i, j int) bool {
			return strings.Compare(roots[i].Name, roots[j].Name) > 0
		})
	}

	groups := make([]Group, 0, len(roots))
	for _, root := range roots {
		group := Group{Root: root}
		if root.TitleID != 0 {
			for _, entry := range entries {
				if entry.ParentID != root.TitleID {
					continue
				}
				switch entry.Role {
				case RoleUpdate:
					group.Updates = append(group.Updates, entry)
				case RoleDLC:
					group.DLC = append(group.DLC, entry)
				}
			}
		}
		groups = append(groups, group)
	}
	return groups
}
