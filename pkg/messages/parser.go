package messages

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// templates maps a language to its nested key tree.
type templates map[string]map[string]any

// parseFunc decodes catalog content.
type parseFunc func(data []byte) (templates, error)

func parserFor(path string) (parseFunc, error) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "yaml", "yml":
		return parseYAML, nil
	case "json":
		return parseJSON, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func parseYAML(data []byte) (templates, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	return split(raw)
}

func parseJSON(data []byte) (templates, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}
	return split(raw)
}

// split checks that every top-level entry is a language holding a key tree.
func split(raw map[string]any) (templates, error) {
	out := make(templates, len(raw))
	for lang, val := range raw {
		tree, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language %q: expected map, got %T", ErrInvalidCatalog, lang, val)
		}
		out[lang] = tree
	}
	if len(out) == 0 {
		return nil, ErrEmptyCatalog
	}
	return out, nil
}

// merge copies src into dst, descending into nested maps. Values in src win.
func merge(dst, src map[string]any) {
	for k, v := range src {
		sub, isMap := v.(map[string]any)
		existing, hasMap := dst[k].(map[string]any)
		if isMap && hasMap {
			merge(existing, sub)
			continue
		}
		if isMap {
			copied := make(map[string]any, len(sub))
			merge(copied, sub)
			v = copied
		}
		dst[k] = v
	}
}

// lookup walks a dot-separated key through nested maps.
func lookup(tree map[string]any, key string) (string, bool) {
	current := tree
	parts := strings.Split(key, ".")
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return "", false
		}
		if i == len(parts)-1 {
			s, ok := val.(string)
			return s, ok
		}
		current, ok = val.(map[string]any)
		if !ok {
			return "", false
		}
	}
	return "", false
}
