package registry

import (
	"fmt"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// ParseLabels parses a YAML labels file into ordered label entries.
//
// Format:
//
//	labels:
//	  intro_title:
//	    en: "Welcome"
//	    de: "Willkommen"
//
// Entry order follows the file, since suggestion tie-breaking depends on
// encounter order. Language codes are canonicalized through BCP 47
// parsing; codes that do not parse are kept verbatim and reported as
// warnings rather than dropped, so a typoed locale never hides its
// translations.
func ParseLabels(data []byte) ([]LabelEntry, []string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, nil, fmt.Errorf("parse labels file: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, nil, nil
	}

	doc := root.Content[0]
	labelsNode := mappingValue(doc, "labels")
	if labelsNode == nil {
		return nil, nil, fmt.Errorf("parse labels file: missing top-level %q mapping", "labels")
	}
	if labelsNode.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("parse labels file: %q must be a mapping", "labels")
	}

	var entries []LabelEntry
	var warnings []string

	for i := 0; i+1 < len(labelsNode.Content); i += 2 {
		idNode := labelsNode.Content[i]
		valNode := labelsNode.Content[i+1]

		entry := LabelEntry{ID: idNode.Value}

		if valNode.Kind != yaml.MappingNode {
			return nil, nil, fmt.Errorf("parse labels file: label %q: translations must be a mapping (line %d)",
				idNode.Value, valNode.Line)
		}

		for j := 0; j+1 < len(valNode.Content); j += 2 {
			langNode := valNode.Content[j]
			code := langNode.Value

			tag, err := language.Parse(code)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf(
					"label %q: unrecognized language code %q (line %d)",
					idNode.Value, code, langNode.Line))
			} else {
				code = tag.String()
			}

			entry.LanguageCodes = append(entry.LanguageCodes, code)
			entry.TranslationCount++
		}

		entries = append(entries, entry)
	}

	return entries, warnings, nil
}

// mappingValue returns the value node for a key in a YAML mapping, or nil.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
