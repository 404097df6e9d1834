// Package langconv implements the streaming language-variant converter: it
// fuses markup-directive interpretation with longest-prefix trie rewriting
// into a single pass over the input text.
package langconv

import (
	"regexp"
	"strings"

	"github.com/oxhq/langconv/internal/language"
	"github.com/oxhq/langconv/internal/markup"
	"github.com/oxhq/langconv/internal/trie"
)

// windowLen bounds per-position lookahead during the literal-text scan.
// Keys longer than this cannot match; baseline dictionaries must be built
// with that in mind.
const windowLen = 29

// directivePattern matches a single, non-nested "-{ ... }-" directive,
// stopping at the first "}-" (non-greedy).
var directivePattern = regexp.MustCompile(`-\{.*?\}-`)

// Options controls a single Convert call.
type Options struct {
	// SequentialGlobal, if true, installs/removes HIDDEN, COPY and REMOVE
	// rules at the point each directive is reached during the emit phase
	// instead of in a pre-scan before emission begins. This changes
	// whether a global rule affects text that appears before it in the
	// document.
	SequentialGlobal bool

	// AvoidHTMLCode is accepted but currently a no-op: conversion never
	// skips "<pre>"/"<code>"/"<script>" spans.
	AvoidHTMLCode bool
}

// Converter converts text to a single target Language.
type Converter struct {
	Language *language.Language
	rules    []*trie.Trie
}

// New returns a Converter targeting lang.
func New(lang *language.Language) *Converter {
	return &Converter{Language: lang, rules: []*trie.Trie{lang.Rules}}
}

// segment is one piece of a divided document: either a literal text span
// (subject to trie rewriting), a raw-fallback span (malformed directive
// text emitted verbatim, bypassing conversion), or a parsed directive.
type segment struct {
	text        string
	rawLiteral  bool
	isDirective bool
	directive   markup.Directive
}

// Convert rewrites text for c.Language, interpreting every "-{ ... }-"
// directive along the way.
func (c *Converter) Convert(text string, opts Options) string {
	w := trie.New()
	segments := divide(text)

	if !opts.SequentialGlobal {
		segments = c.applyGlobalPass(segments, w)
	}

	var out strings.Builder
	for _, seg := range segments {
		switch {
		case seg.rawLiteral:
			out.WriteString(seg.text)
		case seg.isDirective:
			c.emitDirective(&out, seg.directive, w, opts)
		default:
			c.emitLiteral(&out, seg.text, w)
		}
	}
	return out.String()
}

// divide splits text into literal spans and parsed directives, in source
// order. A directive that fails to parse is demoted to a raw-literal span
// over its original matched text, per the lenient error policy documented
// on markup.Parse.
func divide(text string) []segment {
	matches := directivePattern.FindAllStringIndex(text, -1)
	segments := make([]segment, 0, len(matches)*2+1)
	pointer := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if start > pointer {
			segments = append(segments, segment{text: text[pointer:start]})
		}
		raw := text[start:end]
		d, err := markup.Parse(raw)
		if err != nil {
			segments = append(segments, segment{text: raw, rawLiteral: true})
		} else {
			segments = append(segments, segment{isDirective: true, directive: d})
		}
		pointer = end
	}
	if pointer < len(text) {
		segments = append(segments, segment{text: text[pointer:]})
	}
	return segments
}

// applyGlobalPass implements the non-sequential global pass: it installs
// HIDDEN/COPY rules and applies REMOVEs into w before any text is emitted,
// then drops HIDDEN and REMOVE directives from the segment list so they
// produce no output. COPY directives are kept since they still emit.
func (c *Converter) applyGlobalPass(segments []segment, w *trie.Trie) []segment {
	kept := make([]segment, 0, len(segments))
	for _, seg := range segments {
		if seg.isDirective && isMappingRule(seg.directive.Rule) {
			flags := seg.directive.Flags
			if flags.HasAny(markup.Hidden, markup.Copy) {
				c.installRule(seg.directive.Rule, w)
			}
			if flags.Has(markup.Remove) {
				c.deleteRule(seg.directive.Rule, w)
			}
			// COPY outranks HIDDEN/REMOVE when they co-occur: the
			// directive still emits in the emit phase.
			if flags.HasAny(markup.Hidden, markup.Remove) && !flags.Has(markup.Copy) {
				continue
			}
		}
		kept = append(kept, seg)
	}
	return kept
}

// emitLiteral walks text one lookup window at a time, appending either a
// trie match's replacement or the single code point at the cursor.
func (c *Converter) emitLiteral(out *strings.Builder, text string, w *trie.Trie) {
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		end := i + windowLen
		if end > len(runes) {
			end = len(runes)
		}
		node, ok := c.longestPrefix(string(runes[i:end]), w)
		if ok {
			out.WriteString(node.Value)
			i += len([]rune(node.FullKey()))
			continue
		}
		out.WriteRune(runes[i])
		i++
	}
}

// emitDirective handles a single parsed directive: the RAW flag
// short-circuits, emitting a RawBody's original text verbatim (any other
// body under RAW emits nothing); otherwise SHOW/COPY emit localized text, and under
// Options.SequentialGlobal, HIDDEN/COPY/REMOVE mutate w at this point in
// the scan.
func (c *Converter) emitDirective(out *strings.Builder, d markup.Directive, w *trie.Trie, opts Options) {
	if d.Flags.Has(markup.Raw) {
		if rule, ok := d.Rule.(markup.RawBody); ok {
			out.WriteString(rule.Original)
		}
		return
	}

	if d.Flags.HasAny(markup.Show, markup.Copy) {
		if _, display, ok := c.localize(d.Rule); ok {
			out.WriteString(display)
		}
	}

	if opts.SequentialGlobal {
		if d.Flags.HasAny(markup.Hidden, markup.Copy) {
			c.installRule(d.Rule, w)
		}
		if d.Flags.Has(markup.Remove) {
			c.deleteRule(d.Rule, w)
		}
	}
}

// longestPrefix consults extra (the document-local working trie) before
// c.rules (the target language's baseline tries), returning the first
// non-absent match. This is first-hit-wins, not globally-longest-wins: a
// document-local key shadows a language key for the same position even if
// the language key would have matched more code points.
func (c *Converter) longestPrefix(text string, extra *trie.Trie) (*trie.Node, bool) {
	if node, ok := extra.LongestPrefix(text); ok {
		return node, true
	}
	for _, tr := range c.rules {
		if node, ok := tr.LongestPrefix(text); ok {
			return node, true
		}
	}
	return nil, false
}

// localize chooses, for c.Language's fallback chain, the single
// replacement text a rule's mapping yields, and the set of trie keys that
// choice installs. It returns ok=false if no tag in the chain is present
// in the mapping.
func (c *Converter) localize(rule markup.RuleBody) (keys map[string]string, display string, ok bool) {
	switch r := rule.(type) {
	case markup.Unidirectional:
		chosen, found := c.chooseFallback(r.Mapping)
		if !found {
			return nil, "", false
		}
		return map[string]string{r.Original: chosen}, chosen, true

	case markup.Omnidirectional:
		chosen, found := c.chooseFallback(r.Mapping)
		if !found {
			return nil, "", false
		}
		keys := make(map[string]string, len(r.Mapping))
		for _, text := range r.Mapping {
			keys[text] = chosen
		}
		return keys, chosen, true

	default:
		return nil, "", false
	}
}

// chooseFallback walks the language's fallback chain followed by its own
// code, returning the first non-empty mapping entry found. Mapping keys are
// lowercased by the parser, so tags are lowercased here too: variant tags
// compare case-insensitively everywhere.
func (c *Converter) chooseFallback(mapping map[string]string) (string, bool) {
	order := make([]string, 0, len(c.Language.Fallbacks)+1)
	order = append(order, c.Language.Fallbacks...)
	order = append(order, c.Language.Code)
	for _, tag := range order {
		if v := mapping[strings.ToLower(tag)]; v != "" {
			return v, true
		}
	}
	return "", false
}

func (c *Converter) installRule(rule markup.RuleBody, w *trie.Trie) {
	keys, _, ok := c.localize(rule)
	if !ok {
		return
	}
	for k, v := range keys {
		w.Insert(k, v)
	}
}

func (c *Converter) deleteRule(rule markup.RuleBody, w *trie.Trie) {
	keys, _, ok := c.localize(rule)
	if !ok {
		return
	}
	for k := range keys {
		w.Delete(k)
	}
}

func isMappingRule(rule markup.RuleBody) bool {
	switch rule.(type) {
	case markup.Unidirectional, markup.Omnidirectional:
		return true
	default:
		return false
	}
}
