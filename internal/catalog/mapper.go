package catalog

import (
	"strings"

	"github.com/avigneron/dexterm/internal/domain"
)

// mapSpecies converts a species document to a catalog entry, resolving
// the localized name for lang with fallback to the API's default name.
func mapSpecies(dto *speciesDTO, number int, lang string) domain.CatalogEntry {
	name := ""
	for _, n := range dto.Names {
		if n.Language.Name == lang {
			name = n.Name
			break
		}
	}
	if name == "" {
		name = titleCase(dto.Name)
	}
	return domain.CatalogEntry{Number: number, Name: name}
}

// titleCase upper-cases the first letter of the API's lowercase slug
// so the fallback still reads like a display name.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
