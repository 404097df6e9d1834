package trie

import (
	"strings"
	"testing"
)

func TestInsertAndSearch(t *testing.T) {
	tr := New()
	tr.Insert("apple", "fruit")
	tr.Insert("banana", "fruit")
	tr.Insert("carrot", "vegetable")
	tr.Insert("cat", "animal")
	tr.Insert("dog", "animal")
	tr.Insert("zebra", "animal")

	cases := map[string]string{
		"apple":  "fruit",
		"banana": "fruit",
		"carrot": "vegetable",
		"cat":    "animal",
		"dog":    "animal",
		"zebra":  "animal",
	}
	for key, want := range cases {
		node, ok := tr.Search(key)
		if !ok {
			t.Fatalf("Search(%q) missing", key)
		}
		if node.Value != want {
			t.Errorf("Search(%q).Value = %q, want %q", key, node.Value, want)
		}
	}

	if _, ok := tr.Search("pear"); ok {
		t.Error("Search(\"pear\") should be absent")
	}
	if _, ok := tr.Search("caterpillar"); ok {
		t.Error("Search(\"caterpillar\") should be absent")
	}
}

func TestInsertOverwrite(t *testing.T) {
	tr := New()
	tr.Insert("hello", "world")
	tr.Insert("hello", "new world")
	node, ok := tr.Search("hello")
	if !ok || node.Value != "new world" {
		t.Fatalf("expected overwritten value, got %+v", node)
	}
}

func TestDelete(t *testing.T) {
	tr := New()
	tr.Insert("apple", "fruit")
	tr.Insert("banana", "fruit")
	tr.Insert("carrot", "vegetable")

	tr.Delete("banana")
	if _, ok := tr.Search("banana"); ok {
		t.Error("banana should be deleted")
	}
	if node, ok := tr.Search("apple"); !ok || node.Value != "fruit" {
		t.Error("apple should survive deleting banana")
	}
	if node, ok := tr.Search("carrot"); !ok || node.Value != "vegetable" {
		t.Error("carrot should survive deleting banana")
	}

	tr.Delete("dog") // never inserted, no-op
	if node, ok := tr.Search("apple"); !ok || node.Value != "fruit" {
		t.Error("deleting a missing key must not disturb existing keys")
	}

	tr.Delete("apple")
	if _, ok := tr.Search("apple"); ok {
		t.Error("apple should be deleted")
	}
	if node, ok := tr.Search("carrot"); !ok || node.Value != "vegetable" {
		t.Error("carrot should still be present")
	}

	tr.Delete("carrot")
	if _, ok := tr.Search("carrot"); ok {
		t.Error("carrot should be deleted")
	}
}

func TestDeletePrefixSharing(t *testing.T) {
	// "car" and "carrot" share a prefix; deleting the shorter must not
	// disturb the longer, and the intermediate node must survive pruning
	// because it still has a child.
	tr := New()
	tr.Insert("car", "vehicle")
	tr.Insert("carrot", "vegetable")

	tr.Delete("car")
	if _, ok := tr.Search("car"); ok {
		t.Error("car should be deleted")
	}
	node, ok := tr.Search("carrot")
	if !ok || node.Value != "vegetable" {
		t.Error("carrot must survive deleting its prefix sibling car")
	}
}

func TestDeleteLongerKeyKeepsShorterPrefixKey(t *testing.T) {
	// Pruning after deleting "carrot" walks back up through "car"'s terminal
	// node and must stop there, even though that node now has no children.
	tr := New()
	tr.Insert("car", "vehicle")
	tr.Insert("carrot", "vegetable")

	tr.Delete("carrot")
	if _, ok := tr.Search("carrot"); ok {
		t.Error("carrot should be deleted")
	}
	node, ok := tr.Search("car")
	if !ok || node.Value != "vehicle" {
		t.Error("car must survive deleting carrot")
	}
	if got, ok := tr.LongestPrefix("carrot"); !ok || got.Value != "vehicle" {
		t.Error("LongestPrefix(carrot) should now resolve to car's value")
	}
}

func TestLongestPrefix(t *testing.T) {
	tr := New()
	tr.Insert("hello", "world")
	tr.Insert("hey", "there")

	node, ok := tr.LongestPrefix("hello world")
	if !ok || node.Value != "world" {
		t.Fatalf("LongestPrefix(hello world) = %+v, %v", node, ok)
	}

	node, ok = tr.LongestPrefix("hey there!")
	if !ok || node.Value != "there" {
		t.Fatalf("LongestPrefix(hey there!) = %+v, %v", node, ok)
	}

	if _, ok := tr.LongestPrefix("not in trie"); ok {
		t.Error("LongestPrefix should miss when no prefix matches")
	}
}

func TestLongestPrefixPrefersTerminalOverIntermediate(t *testing.T) {
	tr := New()
	tr.Insert("a", "short")
	tr.Insert("abc", "long")

	node, ok := tr.LongestPrefix("abcdef")
	if !ok || node.Value != "long" {
		t.Fatalf("expected longest terminal match 'long', got %+v", node)
	}

	node, ok = tr.LongestPrefix("abzzz")
	if !ok || node.Value != "short" {
		t.Fatalf("expected fallback to shorter terminal 'short', got %+v", node)
	}
}

func TestLongestPrefixIgnoresNonTerminalNodes(t *testing.T) {
	tr := New()
	tr.Insert("abc", "value") // "ab" is an intermediate node with no value

	if _, ok := tr.LongestPrefix("ab"); ok {
		t.Error("an intermediate node without a value must never be returned as a match")
	}
}

func TestFromMap(t *testing.T) {
	tr := FromMap(map[string]string{"hello": "world", "hey": "there", "hi": "everyone"})
	for key, want := range map[string]string{"hello": "world", "hey": "there", "hi": "everyone"} {
		node, ok := tr.Search(key)
		if !ok || node.Value != want {
			t.Errorf("Search(%q) = %+v, want %q", key, node, want)
		}
	}
	if _, ok := tr.Search("invalid"); ok {
		t.Error("Search(\"invalid\") should be absent")
	}
}

func TestDeleteNonexistentKeyLeavesTrieConsistent(t *testing.T) {
	tr := New()
	tr.Insert("hello", "world")
	tr.Delete("goodbye")
	node, ok := tr.Search("hello")
	if !ok || node.Value != "world" {
		t.Error("deleting a nonexistent key must not disturb existing keys")
	}
}

func TestLongKeysRoundTrip(t *testing.T) {
	key := strings.Repeat("a", 1000)
	tr := New()
	tr.Insert(key, "long")
	node, ok := tr.Search(key)
	if !ok || node.Value != "long" {
		t.Fatal("1000-rune key failed to round-trip")
	}
	if _, ok := tr.Search(strings.Repeat("a", 999) + "b"); ok {
		t.Error("near-miss long key should not match")
	}
}

func TestNonBMPCodePointsAreSingleEdges(t *testing.T) {
	tr := New()
	tr.Insert("🍎", "fruit")
	tr.Insert("🍌", "fruit")
	tr.Insert("🥕", "vegetable")
	tr.Insert("🐱", "animal")
	tr.Insert("🐶", "animal")
	tr.Insert("🦓", "animal")

	for key, want := range map[string]string{
		"🍎": "fruit", "🍌": "fruit", "🥕": "vegetable",
		"🐱": "animal", "🐶": "animal", "🦓": "animal",
	} {
		node, ok := tr.Search(key)
		if !ok || node.Value != want {
			t.Errorf("Search(%q) = %+v, want %q", key, node, want)
		}
	}
	if _, ok := tr.Search("🍐"); ok {
		t.Error("unrelated emoji should not match")
	}

	// A single emoji must consume exactly one edge from the root, not one
	// edge per UTF-8 byte.
	node, _ := tr.Search("🍎")
	if node.Parent != tr.root {
		t.Error("a non-BMP code point should be a single edge from the root")
	}
}

func TestFullKey(t *testing.T) {
	tr := New()
	tr.Insert("carrot", "vegetable")
	node, ok := tr.Search("carrot")
	if !ok {
		t.Fatal("search failed")
	}
	if got := node.FullKey(); got != "carrot" {
		t.Errorf("FullKey() = %q, want %q", got, "carrot")
	}
}
