package category

import (
	"errors"
	"fmt"

	"github.com/envelope-budget/envelope/internal/model"
)

// ErrNotFound indicates a category lookup produced no match.
var ErrNotFound = errors.New("category not found")

// ResolveName resolves a record's category display name. When the record
// carries a category id and the id is present in idToName, the mapped
// name wins over any stale name the record also stores. When the id is
// missing or unknown, the stored name is the fallback. A record with
// neither resolves to "".
//
// The three-tier priority is load-bearing for partially migrated data
// where id and name can disagree; changing it silently changes which
// category a legacy record resolves to.
func ResolveName(ref model.CategoryRef, idToName map[int64]string) string {
	if ref.CategoryID != 0 {
		if name, ok := idToName[ref.CategoryID]; ok {
			return name
		}
	}
	return ref.Category
}

// ResolveID looks up a category id by (name, type). A category with the
// right name but the wrong type is not a match, consistent with name
// uniqueness being scoped to the type. Misses return an error wrapping
// ErrNotFound with a human-readable reason.
func ResolveID(name string, typ model.CategoryType, cats []model.Category) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: no category name given", ErrNotFound)
	}
	for _, c := range cats {
		if c.Name == name && c.Type == typ {
			return c.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: no %s category named %q", ErrNotFound, typ, name)
}

// BatchResolveIDs resolves many names against one snapshot. Names with no
// match are omitted from the result rather than failing the batch.
func BatchResolveIDs(names []string, typ model.CategoryType, cats []model.Category) map[string]int64 {
	byName := make(map[string]int64, len(cats))
	for _, c := range cats {
		if c.Type == typ {
			byName[c.Name] = c.ID
		}
	}
	resolved := make(map[string]int64, len(names))
	for _, name := range names {
		if id, ok := byName[name]; ok {
			resolved[name] = id
		}
	}
	return resolved
}

// IDToNameMap builds the lookup map ResolveName consumes from a category
// snapshot.
func IDToNameMap(cats []model.Category) map[int64]string {
	m := make(map[int64]string, len(cats))
	for _, c := range cats {
		m[c.ID] = c.Name
	}
	return m
}
