package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// detectFileType determines the catalog format from the file name
func detectFileType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// flattenCatalog parses catalog content and returns its dotted leaf keys
func flattenCatalog(content []byte, fileType string) ([]string, error) {
	switch fileType {
	case "json":
		return flattenJSON(content)
	case "yaml":
		return flattenYAML(content)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", fileType)
	}
}

// flattenJSON parses a JSON catalog. Nested objects are descended into;
// arrays, null and scalars are leaves.
func flattenJSON(content []byte) ([]string, error) {
	decoder := json.NewDecoder(bytes.NewReader(content))
	decoder.UseNumber()

	var root any
	if err := decoder.Decode(&root); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	obj, ok := root.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("top-level value is not an object")
	}

	var keys []string
	flattenMap(obj, "", &keys)
	return keys, nil
}

func flattenMap(obj map[string]any, prefix string, keys *[]string) {
	names := make([]string, 0, len(obj))
	for name := range obj {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fullKey := joinKey(prefix, name)
		if nested, ok := obj[name].(map[string]any); ok {
			flattenMap(nested, fullKey, keys)
			continue
		}
		*keys = append(*keys, fullKey)
	}
}

// flattenYAML parses a YAML catalog with the same leaf rules as JSON
func flattenYAML(content []byte) ([]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	if doc.Kind == 0 {
		// Empty document
		return nil, nil
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	root = resolveAlias(root)
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top-level value is not a mapping")
	}

	var keys []string
	flattenNode(root, "", &keys)
	return keys, nil
}

func flattenNode(node *yaml.Node, prefix string, keys *[]string) {
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		value := resolveAlias(node.Content[i+1])

		fullKey := joinKey(prefix, name)
		if value.Kind == yaml.MappingNode {
			flattenNode(value, fullKey, keys)
			continue
		}
		*keys = append(*keys, fullKey)
	}
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func joinKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
