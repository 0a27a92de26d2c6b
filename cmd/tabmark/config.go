package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPaths returns the configuration files read on startup:
// the user config, then ./.tabmark.yaml, then $TABMARK_CONFIG.
func DefaultConfigPaths() []string {
	paths := []string{"./.tabmark.yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append([]string{filepath.Join(dir, "tabmark", "config.yaml")}, paths...)
	}
	if p := os.Getenv("TABMARK_CONFIG"); p != "" {
		paths = append(paths, p)
	}
	return paths
}

// YAML is a kong.ConfigurationLoader for YAML files. Keys are flag names,
// either at the top level or nested under a command name:
//
//	mode: article
//	strip-tags: [nav, footer]
//	url:
//	  fetcher: browser
//
// Command keys take precedence over top-level keys.
func YAML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && err != io.EOF {
		return nil, err
	}

	var f kong.ResolverFunc = func(_ *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		if parent != nil && parent.Command != nil {
			if section, ok := values[parent.Command.Name].(map[string]any); ok {
				if v, ok := lookup(section, flag.Name); ok {
					return normalize(v), nil
				}
			}
		}
		if v, ok := lookup(values, flag.Name); ok {
			if _, section := v.(map[string]any); !section {
				return normalize(v), nil
			}
		}
		return nil, nil
	}
	return f, nil
}

// lookup finds name as written or in snake_case.
func lookup(values map[string]any, name string) (any, bool) {
	if v, ok := values[name]; ok {
		return v, true
	}
	v, ok := values[strings.ReplaceAll(name, "-", "_")]
	return v, ok
}

// normalize renders YAML scalars as strings, so kong parses them exactly
// like command-line values.
func normalize(v any) any {
	switch v := v.(type) {
	case nil, string:
		return v
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = fmt.Sprint(e)
		}
		return out
	default:
		return fmt.Sprint(v)
	}
}
