package world

import (
	"strings"

	"github.com/KirkDiggler/gamemaster/internal/errors"
)

// splitPath validates a dot-path and splits it into segments
func splitPath(path string) ([]string, error) {
	if path == "" {
		return nil, errors.InvalidPath("path cannot be empty")
	}

	segments := strings.Split(path, ".")
	for _, segment := range segments {
		if segment == "" {
			return nil, errors.InvalidPathf("path %q contains an empty segment", path)
		}
	}
	return segments, nil
}

// resolvePath walks the document to the value at path. Absent segments are
// NotFound; walking through a value that is not an object is InvalidPath.
func resolvePath(doc map[string]interface{}, path string) (interface{}, error) {
	segments, err := splitPath(path)
	if err != nil {
		return nil, err
	}

	var current interface{} = doc
	for i, segment := range segments {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil, errors.InvalidPathf(
				"path %q traverses non-container segment %q",
				path, strings.Join(segments[:i], "."))
		}
		current, ok = obj[segment]
		if !ok {
			return nil, errors.NotFoundf("path %q not found", path)
		}
	}
	return current, nil
}

// setPath writes value at path, creating intermediate objects for absent
// segments. An existing non-object at an intermediate segment is InvalidPath.
func setPath(doc map[string]interface{}, path string, value interface{}) error {
	segments, err := splitPath(path)
	if err != nil {
		return err
	}

	current := doc
	for i, segment := range segments[:len(segments)-1] {
		next, exists := current[segment]
		if !exists || next == nil {
			child := make(map[string]interface{})
			current[segment] = child
			current = child
			continue
		}

		obj, ok := next.(map[string]interface{})
		if !ok {
			return errors.InvalidPathf(
				"path %q traverses non-container segment %q",
				path, strings.Join(segments[:i+1], "."))
		}
		current = obj
	}

	current[segments[len(segments)-1]] = value
	return nil
}
