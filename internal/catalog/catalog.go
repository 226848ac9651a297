// Package catalog loads translation catalogs and flattens them into dotted keys.
package catalog

import "sort"

// File is a single translation catalog file
type File struct {
	Language string
	Path     string
	Keys     []string // Flattened, non-ignored keys in file order
}

// Catalog is the merged view of every loaded translation file
type Catalog struct {
	Files    []File
	Warnings []string

	keys       map[string]bool
	byLanguage map[string]map[string]bool
	ignored    map[string]bool
}

func newCatalog() *Catalog {
	return &Catalog{
		keys:       make(map[string]bool),
		byLanguage: make(map[string]map[string]bool),
		ignored:    make(map[string]bool),
	}
}

func (c *Catalog) add(f File, ignored []string) {
	c.Files = append(c.Files, f)

	langKeys, ok := c.byLanguage[f.Language]
	if !ok {
		langKeys = make(map[string]bool)
		c.byLanguage[f.Language] = langKeys
	}
	for _, k := range f.Keys {
		c.keys[k] = true
		langKeys[k] = true
	}
	for _, k := range ignored {
		c.ignored[k] = true
	}
}

// Keys returns the union of keys across all languages, sorted
func (c *Catalog) Keys() []string {
	return sortedSet(c.keys)
}

// Ignored returns the keys dropped by ignore rules while loading, sorted
func (c *Catalog) Ignored() []string {
	return sortedSet(c.ignored)
}

// Languages returns the loaded languages, sorted
func (c *Catalog) Languages() []string {
	langs := make([]string, 0, len(c.byLanguage))
	for lang := range c.byLanguage {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Gaps returns, per language, the union keys that language does not define.
// Languages without gaps are omitted; a single-language catalog has none.
func (c *Catalog) Gaps() map[string][]string {
	gaps := make(map[string][]string)
	if len(c.byLanguage) < 2 {
		return gaps
	}
	for lang, langKeys := range c.byLanguage {
		var missing []string
		for k := range c.keys {
			if !langKeys[k] {
				missing = append(missing, k)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			gaps[lang] = missing
		}
	}
	return gaps
}

// Empty reports whether no keys were loaded
func (c *Catalog) Empty() bool {
	return len(c.keys) == 0
}

func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
