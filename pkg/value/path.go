package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Get resolves a dotted path inside data. An empty path resolves to data
// itself, which is how key-less fields address their parent value.
func Get(data any, path string) (any, bool) {
	if path == "" {
		return data, data != nil
	}
	current := data
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			if m, ok := AsMap(node); ok {
				next, ok := m[segment]
				if !ok {
					return nil, false
				}
				current = next
				continue
			}
			return nil, false
		}
	}
	return current, true
}

// Set writes value at a dotted path inside root, creating intermediate maps
// as needed. Numeric segments index into existing slices.
func Set(root map[string]any, path string, value any) error {
	if root == nil {
		return fmt.Errorf("value: root map is nil")
	}
	if path == "" {
		return fmt.Errorf("value: path is empty")
	}
	segments := strings.Split(path, ".")
	var current any = root
	for i, segment := range segments {
		last := i == len(segments)-1
		switch node := current.(type) {
		case map[string]any:
			if last {
				node[segment] = value
				return nil
			}
			next, ok := node[segment]
			switch next.(type) {
			case map[string]any, []any:
			default:
				ok = false
			}
			if !ok {
				child := make(map[string]any)
				node[segment] = child
				next = child
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil {
				return fmt.Errorf("value: expected numeric segment, got %q", segment)
			}
			if idx < 0 || idx >= len(node) {
				return fmt.Errorf("value: index %d out of range in path %q", idx, path)
			}
			if last {
				node[idx] = value
				return nil
			}
			child, ok := node[idx].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[idx] = child
			}
			current = child
		default:
			return fmt.Errorf("value: unexpected container for segment %q", segment)
		}
	}
	return nil
}
