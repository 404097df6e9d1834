// Package registry manages the set of language variants a converter can
// target, indexed by canonical code and by alias.
package registry

import (
	"fmt"
	"sync"

	"github.com/oxhq/langconv/internal/language"
)

// Registry holds language descriptors with thread-safe registration and
// lookup. It has no built-in knowledge of any specific language; callers
// populate it explicitly (Bootstrap registers the bundled zh variants).
type Registry struct {
	mu        sync.RWMutex
	languages map[string]*language.Language // canonical code -> language
	aliases   map[string]string             // alias -> canonical code
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		languages: make(map[string]*language.Language),
		aliases:   make(map[string]string),
	}
}

// RegisterLanguage adds lang to the registry under its own code plus any
// extra aliases. Aliases are independent of lang.Fallbacks: they are
// alternate spellings a caller might use to request this language (e.g.
// "zh_CN" for "zh-cn"), not part of the conversion fallback chain.
func (r *Registry) RegisterLanguage(lang *language.Language, aliases ...string) error {
	if lang == nil {
		return fmt.Errorf("language cannot be nil")
	}
	if lang.Code == "" {
		return fmt.Errorf("language must have a non-empty code")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.languages[lang.Code]; exists {
		return fmt.Errorf("language '%s' already registered", lang.Code)
	}

	r.languages[lang.Code] = lang

	for _, alias := range aliases {
		if alias == "" {
			continue
		}
		if existing, exists := r.aliases[alias]; exists {
			return fmt.Errorf("alias '%s' conflicts with existing mapping to '%s'", alias, existing)
		}
		r.aliases[alias] = lang.Code
	}

	return nil
}

// GetLanguage retrieves a language by its canonical code or by alias.
func (r *Registry) GetLanguage(identifier string) (*language.Language, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if lang, exists := r.languages[identifier]; exists {
		return lang, nil
	}

	if canonical, exists := r.aliases[identifier]; exists {
		if lang, exists := r.languages[canonical]; exists {
			return lang, nil
		}
	}

	return nil, fmt.Errorf("no language found for identifier '%s'", identifier)
}

// HasLanguage reports whether identifier resolves to a registered language.
func (r *Registry) HasLanguage(identifier string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, exists := r.languages[identifier]; exists {
		return true
	}
	if canonical, exists := r.aliases[identifier]; exists {
		_, exists := r.languages[canonical]
		return exists
	}
	return false
}

// ListLanguages returns every registered language's canonical code.
func (r *Registry) ListLanguages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := make([]string, 0, len(r.languages))
	for code := range r.languages {
		codes = append(codes, code)
	}
	return codes
}

// Unregister removes a language and its aliases from the registry.
func (r *Registry) Unregister(code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.languages[code]; !exists {
		return fmt.Errorf("language '%s' not found", code)
	}
	delete(r.languages, code)

	for alias, canonical := range r.aliases {
		if canonical == code {
			delete(r.aliases, alias)
		}
	}
	return nil
}

// Clear removes every registered language.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.languages = make(map[string]*language.Language)
	r.aliases = make(map[string]string)
}

// LanguageInfo describes a registered language for introspection, e.g. a
// CLI "languages" subcommand.
type LanguageInfo struct {
	Code      string   `json:"code"`
	Aliases   []string `json:"aliases"`
	Fallbacks []string `json:"fallbacks"`
}

// GetLanguageInfo returns introspection data for the named language.
func (r *Registry) GetLanguageInfo(code string) (*LanguageInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lang, exists := r.languages[code]
	if !exists {
		return nil, fmt.Errorf("language '%s' not found", code)
	}

	var aliases []string
	for alias, canonical := range r.aliases {
		if canonical == code {
			aliases = append(aliases, alias)
		}
	}

	return &LanguageInfo{
		Code:      lang.Code,
		Aliases:   aliases,
		Fallbacks: lang.Fallbacks,
	}, nil
}

// DefaultRegistry is the package-level registry used by the CLI.
var DefaultRegistry = NewRegistry()

// Bootstrap registers every bundled language descriptor into
// DefaultRegistry. It is not idempotent: a second call per process returns
// an error from the underlying RegisterLanguage calls, same as registering
// any other duplicate.
func Bootstrap() error {
	for _, reg := range []struct {
		lang    *language.Language
		aliases []string
	}{
		{language.ZhCN, []string{"zh_cn", "zh-hans-cn"}},
		{language.ZhHK, []string{"zh_hk", "zh-hant-hk"}},
		{language.ZhTW, []string{"zh_tw", "zh-hant-tw"}},
	} {
		if err := DefaultRegistry.RegisterLanguage(reg.lang, reg.aliases...); err != nil {
			return fmt.Errorf("bootstrap: %w", err)
		}
	}
	return nil
}

// RegisterLanguage adds a language to the default registry.
func RegisterLanguage(lang *language.Language, aliases ...string) error {
	return DefaultRegistry.RegisterLanguage(lang, aliases...)
}

// GetLanguage retrieves a language from the default registry.
func GetLanguage(identifier string) (*language.Language, error) {
	return DefaultRegistry.GetLanguage(identifier)
}

// ListLanguages returns every language registered in the default registry.
func ListLanguages() []string {
	return DefaultRegistry.ListLanguages()
}

// HasLanguage checks the default registry.
func HasLanguage(identifier string) bool {
	return DefaultRegistry.HasLanguage(identifier)
}
