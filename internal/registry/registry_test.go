package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/oxhq/langconv/internal/language"
	"github.com/oxhq/langconv/internal/trie"
)

func testLang(code string, fallbacks ...string) *language.Language {
	return &language.Language{Code: code, Fallbacks: fallbacks, Rules: trie.New()}
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("expected non-nil registry")
	}
	if len(r.languages) != 0 {
		t.Error("expected empty registry")
	}
	if _, err := r.GetLanguage("zh-cn"); err == nil {
		t.Error("expected error looking up an unregistered language")
	}
}

func TestRegisterLanguage(t *testing.T) {
	r := NewRegistry()
	lang := testLang("zh-cn", "zh-hans")

	if err := r.RegisterLanguage(lang, "zh_cn"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.languages) != 1 {
		t.Error("expected 1 language")
	}
	if _, err := r.GetLanguage("zh_cn"); err != nil {
		t.Errorf("expected to find language by alias: %v", err)
	}
}

func TestRegisterLanguageNilOrEmptyCode(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterLanguage(nil); err == nil {
		t.Error("expected error for nil language")
	}
	if err := r.RegisterLanguage(testLang("")); err == nil {
		t.Error("expected error for empty code")
	}
}

func TestRegisterLanguageDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterLanguage(testLang("zh-cn")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.RegisterLanguage(testLang("zh-cn")); err == nil {
		t.Error("expected error for duplicate language code")
	}
}

func TestRegisterLanguageConflictingAlias(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterLanguage(testLang("zh-cn"), "cn"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := r.RegisterLanguage(testLang("zh-hk"), "cn")
	if err == nil || !strings.Contains(err.Error(), "conflicts with existing mapping") {
		t.Errorf("expected alias-conflict error, got: %v", err)
	}
}

func TestGetLanguage(t *testing.T) {
	r := NewRegistry()
	lang := testLang("zh-cn", "zh-hans")
	if err := r.RegisterLanguage(lang, "zh_cn"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := r.GetLanguage("zh-cn")
	if err != nil || got.Code != "zh-cn" {
		t.Errorf("direct lookup failed: %v, %+v", err, got)
	}

	got, err = r.GetLanguage("zh_cn")
	if err != nil || got.Code != "zh-cn" {
		t.Errorf("alias lookup failed: %v, %+v", err, got)
	}

	if _, err := r.GetLanguage("nonexistent"); err == nil {
		t.Error("expected error for non-existent language")
	}
}

func TestListLanguages(t *testing.T) {
	r := NewRegistry()
	if len(r.ListLanguages()) != 0 {
		t.Error("expected empty list initially")
	}

	if err := r.RegisterLanguage(testLang("zh-cn")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.RegisterLanguage(testLang("zh-hk")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	codes := r.ListLanguages()
	if len(codes) != 2 {
		t.Errorf("expected 2 languages, got %d", len(codes))
	}
	if !slices.Contains(codes, "zh-cn") || !slices.Contains(codes, "zh-hk") {
		t.Errorf("missing expected codes in %v", codes)
	}
}

func TestUnregisterLanguage(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterLanguage(testLang("zh-cn"), "zh_cn"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := r.Unregister("zh-cn"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.languages) != 0 {
		t.Error("expected 0 languages after unregister")
	}
	if _, err := r.GetLanguage("zh_cn"); err == nil {
		t.Error("expected alias to be cleaned up after unregister")
	}
	if err := r.Unregister("nonexistent"); err == nil {
		t.Error("expected error unregistering a non-existent language")
	}
}

func TestClear(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterLanguage(testLang("zh-cn"), "zh_cn"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r.Clear()

	if len(r.ListLanguages()) != 0 {
		t.Error("expected empty list after Clear")
	}
	if r.HasLanguage("zh-cn") || r.HasLanguage("zh_cn") {
		t.Error("expected language and alias to be gone after Clear")
	}
}

func TestGetLanguageInfo(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterLanguage(testLang("zh-cn", "zh-hans"), "zh_cn"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := r.GetLanguageInfo("zh-cn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Code != "zh-cn" {
		t.Errorf("code = %q", info.Code)
	}
	if len(info.Aliases) != 1 || info.Aliases[0] != "zh_cn" {
		t.Errorf("aliases = %v", info.Aliases)
	}
	if len(info.Fallbacks) != 1 || info.Fallbacks[0] != "zh-hans" {
		t.Errorf("fallbacks = %v", info.Fallbacks)
	}

	if _, err := r.GetLanguageInfo("nonexistent"); err == nil {
		t.Error("expected error for non-existent language")
	}
}

func TestConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			lang := testLang(fmt.Sprintf("lang%d", id))
			_ = r.RegisterLanguage(lang, fmt.Sprintf("alias%d", id))
			_, _ = r.GetLanguage(fmt.Sprintf("lang%d", id))
		}(i)
	}
	wg.Wait()

	if got := len(r.ListLanguages()); got != 20 {
		t.Errorf("expected 20 languages, got %d", got)
	}
}

func TestBootstrapRegistersBundledLanguages(t *testing.T) {
	saved := DefaultRegistry
	defer func() { DefaultRegistry = saved }()
	DefaultRegistry = NewRegistry()

	if err := Bootstrap(); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	for _, code := range []string{"zh-cn", "zh-hk", "zh-tw"} {
		if !HasLanguage(code) {
			t.Errorf("expected %s to be registered after Bootstrap", code)
		}
	}
	if !HasLanguage("zh_cn") {
		t.Error("expected zh_cn alias to be registered after Bootstrap")
	}
}

func BenchmarkRegisterLanguage(b *testing.B) {
	r := NewRegistry()
	for i := 0; b.Loop(); i++ {
		lang := testLang(fmt.Sprintf("lang%d", i))
		_ = r.RegisterLanguage(lang, fmt.Sprintf("alias%d", i))
		_ = r.Unregister(fmt.Sprintf("lang%d", i))
	}
}

func BenchmarkGetLanguage(b *testing.B) {
	r := NewRegistry()
	_ = r.RegisterLanguage(testLang("zh-cn"), "zh_cn")

	for b.Loop() {
		_, _ = r.GetLanguage("zh-cn")
	}
}
