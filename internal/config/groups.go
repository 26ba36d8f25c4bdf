package config

import (
	"fmt"

	"github.com/rileyhilliard/dfleet/internal/errors"
)

// decodeGroups converts the raw decoded YAML value for the "groups" key into
// the ordered []Group slice. Host entries may be written two ways:
//
//	hosts:
//	  - web-01                       # bare address, uses the group pattern
//	  - address: db-01.internal      # explicit form
//	    pattern: /var/lib/postgres   # per-host override
//
// Any other shape is a CONFIG error.
func decodeGroups(raw interface{}) ([]Group, error) {
	if raw == nil {
		return nil, nil
	}

	list, ok := raw.([]interface{})
	if !ok {
		return nil, errors.New(errors.ErrConfig,
			"'groups' must be a list of group entries",
			"Each entry needs a name, a pattern, and a hosts list. See 'dfleet init' for an example.")
	}

	groups := make([]Group, 0, len(list))
	for i, item := range list {
		entry, ok := toStringMap(item)
		if !ok {
			return nil, errors.New(errors.ErrConfig,
				fmt.Sprintf("Group entry %d is not a mapping", i+1),
				"Each group needs 'name', 'pattern', and 'hosts' keys.")
		}

		group := Group{}
		if name, ok := entry["name"].(string); ok {
			group.Name = name
		}
		if group.Name == "" {
			return nil, errors.New(errors.ErrConfig,
				fmt.Sprintf("Group entry %d has no name", i+1),
				"Add a 'name' key to every group.")
		}

		if pattern, ok := entry["pattern"].(string); ok {
			group.Pattern = pattern
		}

		hosts, err := decodeHosts(group.Name, entry["hosts"])
		if err != nil {
			return nil, err
		}
		group.Hosts = hosts

		groups = append(groups, group)
	}

	return groups, nil
}

// decodeHosts converts a group's raw hosts value into ordered host entries.
func decodeHosts(groupName string, raw interface{}) ([]HostEntry, error) {
	if raw == nil {
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("Group '%s' has no hosts", groupName),
			"Add a 'hosts' list with at least one address.")
	}

	list, ok := raw.([]interface{})
	if !ok {
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("Group '%s': 'hosts' must be a list", groupName),
			"Write hosts as a YAML list of addresses or {address, pattern} entries.")
	}

	hosts := make([]HostEntry, 0, len(list))
	for i, item := range list {
		switch v := item.(type) {
		case string:
			if v == "" {
				return nil, errors.New(errors.ErrConfig,
					fmt.Sprintf("Group '%s': host %d is an empty string", groupName, i+1),
					"Every host entry needs an address.")
			}
			hosts = append(hosts, HostEntry{Address: v})
		default:
			entry, ok := toStringMap(item)
			if !ok {
				return nil, errors.New(errors.ErrConfig,
					fmt.Sprintf("Group '%s': host %d is neither an address nor a mapping", groupName, i+1),
					"Write a host as \"hostname\" or as {address: hostname, pattern: /mount}.")
			}

			host := HostEntry{}
			if addr, ok := entry["address"].(string); ok {
				host.Address = addr
			}
			if host.Address == "" {
				return nil, errors.New(errors.ErrConfig,
					fmt.Sprintf("Group '%s': host %d has no address", groupName, i+1),
					"Add an 'address' key to the host entry.")
			}
			if pattern, ok := entry["pattern"].(string); ok {
				host.Pattern = pattern
			}
			hosts = append(hosts, host)
		}
	}

	return hosts, nil
}

// toStringMap normalizes the two map shapes YAML decoders produce.
func toStringMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = val
		}
		return out, true
	default:
		return nil, false
	}
}
