// Package payload manipulates document payloads addressed by path
// expressions like "metadata.tags" or "/metadata/tags".
package payload

import "strings"

// Resolve walks obj down to the parent of the element addressed by path and
// returns that parent together with the final key. An empty path or "/"
// addresses the root: the returned parent is obj itself and the key is
// empty. Both '.' and '/' work as separators; a leading '/' is ignored.
//
// When createMissing is true, intermediate maps are created as needed.
// Resolution fails when a path segment exists but is not a map.
func Resolve(obj map[string]any, path string, createMissing bool) (parent map[string]any, key string, ok bool) {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return obj, "", true
	}

	parts := strings.FieldsFunc(path, func(r rune) bool {
		return r == '.' || r == '/'
	})
	if len(parts) == 0 {
		return obj, "", true
	}

	current := obj
	for _, part := range parts[:len(parts)-1] {
		next, exists := current[part]
		if !exists {
			if !createMissing {
				return nil, "", false
			}
			created := make(map[string]any)
			current[part] = created
			current = created
			continue
		}
		m, isMap := next.(map[string]any)
		if !isMap {
			return nil, "", false
		}
		current = m
	}

	return current, parts[len(parts)-1], true
}

// Set places value at path inside obj, creating intermediate maps. A root
// path is rejected since there is no single key to assign.
func Set(obj map[string]any, path string, value any) bool {
	parent, key, ok := Resolve(obj, path, true)
	if !ok || key == "" {
		return false
	}
	parent[key] = value
	return true
}

// Delete removes the element at path from obj. Deleting a path that does
// not resolve is reported as failure so callers can warn per document.
func Delete(obj map[string]any, path string) bool {
	parent, key, ok := Resolve(obj, path, false)
	if !ok || key == "" {
		return false
	}
	if _, exists := parent[key]; !exists {
		return false
	}
	delete(parent, key)
	return true
}

// Merge copies the fields of src into obj at the root level, overwriting
// existing keys.
func Merge(obj, src map[string]any) {
	for k, v := range src {
		obj[k] = v
	}
}
