package registry

import (
	"fmt"

	"github.com/tactus-lang/tactus/internal/ir"
)

// PopulateFromImports loads every styles and labels file a document
// imports into the store and records the document's associations.
// Load and parse problems come back as warnings so a missing stylesheet
// degrades selector validation instead of failing the compilation.
func PopulateFromImports(store *Store, loader Loader, docURI string, imports []ir.Import) []string {
	var warnings []string
	var styleURIs, labelURIs []string

	for _, imp := range imports {
		switch imp.Category {
		case ir.ImportStyles, ir.ImportLabels:
		default:
			continue
		}

		path, err := loader.ResolvePath(docURI, imp.Path)
		if err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		if !loader.FileExists(path) {
			warnings = append(warnings, fmt.Sprintf("imported file %s does not exist", path))
			continue
		}
		src, err := loader.LoadFile(path)
		if err != nil {
			warnings = append(warnings, err.Error())
			continue
		}

		switch imp.Category {
		case ir.ImportStyles:
			store.SetCSS(path, ParseCSS(src))
			styleURIs = append(styleURIs, path)
		case ir.ImportLabels:
			entries, labelWarnings, err := ParseLabels([]byte(src))
			if err != nil {
				warnings = append(warnings, err.Error())
				continue
			}
			warnings = append(warnings, labelWarnings...)
			store.SetLabels(path, entries)
			labelURIs = append(labelURIs, path)
		}
	}

	store.SetDocumentImports(docURI, styleURIs, labelURIs)
	return warnings
}
