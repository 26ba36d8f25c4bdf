package fleet

import (
	"fmt"

	"github.com/rileyhilliard/dfleet/internal/config"
	"github.com/rileyhilliard/dfleet/internal/errors"
)

// Resolve flattens the configured groups into the ordered target registry.
// Order is deterministic: groups in declaration order, hosts in list order
// within each group. Resolving the same config twice yields identical output.
//
// Each host's pattern is its override if present, else the group default.
// A host with neither is a CONFIG error, as is a duplicate group name, and
// no partial registry is returned.
func Resolve(groups []config.Group) ([]Target, error) {
	if len(groups) == 0 {
		return nil, errors.New(errors.ErrConfig,
			"No groups configured",
			"Add at least one group to the config. Run 'dfleet init' for an example.")
	}

	seen := make(map[string]bool, len(groups))
	var targets []Target

	for _, group := range groups {
		if seen[group.Name] {
			return nil, errors.New(errors.ErrConfig,
				fmt.Sprintf("Group '%s' is declared more than once", group.Name),
				"Group names must be unique; merge the host lists or rename one group.")
		}
		seen[group.Name] = true

		for _, host := range group.Hosts {
			pattern := host.Pattern
			if pattern == "" {
				pattern = group.Pattern
			}
			if pattern == "" {
				return nil, errors.New(errors.ErrConfig,
					fmt.Sprintf("Host '%s' in group '%s' has no filter pattern", host.Address, group.Name),
					"Set a 'pattern' on the group or on the host entry.")
			}

			targets = append(targets, Target{
				Group:   group.Name,
				Host:    host.Address,
				Pattern: pattern,
				Index:   len(targets),
			})
		}
	}

	return targets, nil
}

// FilterGroups returns only the targets belonging to the named groups,
// reindexed but otherwise in registry order. An empty filter keeps everything.
func FilterGroups(targets []Target, names []string) []Target {
	if len(names) == 0 {
		return targets
	}

	want := make(map[string]bool, len(names))
	for _, name := range names {
		want[name] = true
	}

	var filtered []Target
	for _, t := range targets {
		if want[t.Group] {
			t.Index = len(filtered)
			filtered = append(filtered, t)
		}
	}
	return filtered
}
