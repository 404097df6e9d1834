// Package language describes a target language variant: its code, its
// fallback chain, and the baseline trie of conversion rules loaded for it.
// Language values are built once at startup and treated as immutable,
// read-only shared state from then on: converters never write into a
// Language's baseline trie, only into their own document-local working
// trie.
package language

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/oxhq/langconv/internal/trie"
)

//go:embed data
var bundled embed.FS

// Language is a read-only record: a language tag, the ordered list of
// other tags to consult before it when localizing a directive's rule, and
// the baseline trie merged from its rule dictionaries.
type Language struct {
	Code      string
	Fallbacks []string
	Rules     *trie.Trie
}

// FromFiles reads one or more JSON dictionaries (flat {key: replacement}
// maps of strings) from disk, merges them in order (a later file's keys
// overwrite an earlier file's on collision), and builds the resulting
// baseline trie. code is lowercased.
func FromFiles(code string, paths []string, fallbacks []string) (*Language, error) {
	merged := make(map[string]string)
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("language %s: reading %s: %w", code, path, err)
		}
		if err := mergeDict(merged, data); err != nil {
			return nil, fmt.Errorf("language %s: parsing %s: %w", code, path, err)
		}
	}
	return &Language{
		Code:      strings.ToLower(code),
		Fallbacks: fallbacks,
		Rules:     trie.FromMap(merged),
	}, nil
}

// FromEmbedded is FromFiles for a dictionary shipped inside the binary via
// an embed.FS, such as the bundled zh variants in data/zh/.
func FromEmbedded(code string, fsys fs.FS, paths []string, fallbacks []string) (*Language, error) {
	merged := make(map[string]string)
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("language %s: reading %s: %w", code, path, err)
		}
		if err := mergeDict(merged, data); err != nil {
			return nil, fmt.Errorf("language %s: parsing %s: %w", code, path, err)
		}
	}
	return &Language{
		Code:      strings.ToLower(code),
		Fallbacks: fallbacks,
		Rules:     trie.FromMap(merged),
	}, nil
}

func mergeDict(into map[string]string, data []byte) error {
	var dict map[string]string
	if err := json.Unmarshal(data, &dict); err != nil {
		return err
	}
	for k, v := range dict {
		into[k] = v
	}
	return nil
}
