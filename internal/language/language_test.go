package language

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromFilesMergesLaterOverEarlier(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.json")
	second := filepath.Join(dir, "b.json")
	if err := os.WriteFile(first, []byte(`{"x":"1","y":"2"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte(`{"y":"3","z":"4"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	lang, err := FromFiles("Zh-CN", []string{first, second}, []string{"zh-hans"})
	if err != nil {
		t.Fatalf("FromFiles: %v", err)
	}
	if lang.Code != "zh-cn" {
		t.Errorf("code should be lowercased, got %q", lang.Code)
	}
	cases := map[string]string{"x": "1", "y": "3", "z": "4"}
	for k, want := range cases {
		node, ok := lang.Rules.Search(k)
		if !ok || node.Value != want {
			t.Errorf("Search(%q) = %+v, want %q", k, node, want)
		}
	}
}

func TestFromFilesMissingFileErrors(t *testing.T) {
	_, err := FromFiles("zh-cn", []string{"/nonexistent/path.json"}, nil)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestBundledZhCN(t *testing.T) {
	if ZhCN.Code != "zh-cn" {
		t.Errorf("code = %q", ZhCN.Code)
	}
	if len(ZhCN.Fallbacks) != 1 || ZhCN.Fallbacks[0] != "zh-hans" {
		t.Errorf("fallbacks = %v", ZhCN.Fallbacks)
	}
	// CN.json's word-level override must win over hans.json's char-level one.
	node, ok := ZhCN.Rules.LongestPrefix("電腦程式適應")
	if !ok || node.Value != "计算机程序" {
		t.Errorf("longest prefix = %+v, want 计算机程序", node)
	}
}

func TestBundledZhHKAndZhTWFallbacks(t *testing.T) {
	if len(ZhHK.Fallbacks) != 2 || ZhHK.Fallbacks[0] != "zh-hant" {
		t.Errorf("zh-hk fallbacks = %v", ZhHK.Fallbacks)
	}
	if len(ZhTW.Fallbacks) != 2 || ZhTW.Fallbacks[0] != "zh-hant" {
		t.Errorf("zh-tw fallbacks = %v", ZhTW.Fallbacks)
	}
}
