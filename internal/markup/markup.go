// Package markup parses the inline "-{ ... }-" conversion directives that
// appear in language-variant source text. Parsing is pure and total except
// for an unrecognized flag character, which fails the whole directive (see
// ParseError).
package markup

import (
	"fmt"
	"strings"
)

// Flag is a single-character directive modifier.
type Flag byte

const (
	// Hidden installs a global rule and emits nothing.
	Hidden Flag = 'H'
	// Copy installs a global rule and also emits the localized text.
	Copy Flag = 'A'
	// Remove deletes a previously installed global rule.
	Remove Flag = '-'
	// Title overrides the page title; a no-op on body output.
	Title Flag = 'T'
	// Description is a descriptive annotation; a no-op on body output.
	Description Flag = 'D'
	// Raw emits the enclosed text verbatim, bypassing conversion.
	Raw Flag = 'R'
	// Show emits the localized text without installing a rule.
	Show Flag = 'S'
	// Empty marks a directive whose body was the empty string.
	Empty Flag = 0
)

func flagFromByte(b byte) (Flag, bool) {
	switch Flag(b) {
	case Hidden, Copy, Remove, Title, Description, Raw, Show:
		return Flag(b), true
	default:
		return 0, false
	}
}

// FlagSet is a directive's flags, modeled as a set since "H;A" style
// combinations are legal even though most directives carry exactly one.
type FlagSet map[Flag]struct{}

func newFlagSet(flags ...Flag) FlagSet {
	fs := make(FlagSet, len(flags))
	for _, f := range flags {
		fs[f] = struct{}{}
	}
	return fs
}

// Has reports whether the set contains f.
func (fs FlagSet) Has(f Flag) bool {
	_, ok := fs[f]
	return ok
}

// HasAny reports whether the set contains any of flags.
func (fs FlagSet) HasAny(flags ...Flag) bool {
	for _, f := range flags {
		if fs.Has(f) {
			return true
		}
	}
	return false
}

// RuleBody is the typed payload of a directive: Unidirectional,
// Omnidirectional, Raw, or Empty.
type RuleBody interface {
	isRuleBody()
}

// Unidirectional carries a canonical source string and a per-variant
// mapping of what it becomes in each target language.
type Unidirectional struct {
	Original string
	Mapping  map[string]string
}

func (Unidirectional) isRuleBody() {}

// Omnidirectional lets any listed variant's text map to any other; there
// is no single canonical "original".
type Omnidirectional struct {
	Mapping map[string]string
}

func (Omnidirectional) isRuleBody() {}

// RawBody is uninterpreted literal text, emitted as-is.
type RawBody struct {
	Original string
}

func (RawBody) isRuleBody() {}

// EmptyBody is the placeholder rule for "-{}-".
type EmptyBody struct{}

func (EmptyBody) isRuleBody() {}

// Directive is a single parsed "-{ ... }-" markup construct.
type Directive struct {
	Flags FlagSet
	Rule  RuleBody
}

// ParseError reports a directive body that could not be parsed: an
// unrecognized flag character fails the whole directive.
type ParseError struct {
	Raw    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("markup: cannot parse directive %q: %s", e.Raw, e.Reason)
}

// Parse interprets raw, which must begin with "-{" and end with "}-", into
// a Directive. On a malformed flag list it returns a *ParseError; callers
// that want the lenient "treat as raw" policy should catch that error and
// fall back to RawBody themselves.
func Parse(raw string) (Directive, error) {
	body := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(raw, "-{"), "}-"))

	if idx := strings.Index(body, "|"); idx != -1 {
		flagPart := strings.TrimSpace(body[:idx])
		rulePart := strings.TrimSpace(body[idx+1:])

		flags, err := parseFlags(flagPart)
		if err != nil {
			return Directive{}, &ParseError{Raw: raw, Reason: err.Error()}
		}
		rule := parseRules(rulePart)
		return Directive{Flags: flags, Rule: rule}, nil
	}

	rule := parseRules(strings.TrimSpace(body))
	return Directive{Flags: flagsForRule(rule), Rule: rule}, nil
}

func parseFlags(raw string) (FlagSet, error) {
	if raw == "" {
		return newFlagSet(Empty), nil
	}
	parts := strings.Split(raw, ";")
	fs := make(FlagSet, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if len(part) != 1 {
			return nil, fmt.Errorf("unrecognized flag %q", part)
		}
		f, ok := flagFromByte(part[0])
		if !ok {
			return nil, fmt.Errorf("unrecognized flag %q", part)
		}
		fs[f] = struct{}{}
	}
	return fs, nil
}

// flagsForRule derives the implicit flag set for a directive with no
// explicit "flag|" prefix.
func flagsForRule(rule RuleBody) FlagSet {
	switch rule.(type) {
	case RawBody:
		return newFlagSet(Raw)
	case EmptyBody:
		return newFlagSet(Empty)
	default:
		return newFlagSet(Show)
	}
}

// parseRules parses the rule portion of a directive body: the text after
// any "flag|" prefix, or the whole body when there was none.
func parseRules(raw string) RuleBody {
	fromTo := splitOnceTrim(raw, "=>")
	if len(fromTo) == 1 {
		text := fromTo[0]
		if !strings.Contains(text, ":") {
			if text == "" {
				return EmptyBody{}
			}
			return RawBody{Original: text}
		}
		return Omnidirectional{Mapping: parseMapping(text)}
	}

	original := fromTo[0]
	return Unidirectional{Original: original, Mapping: parseMapping(fromTo[1])}
}

// parseMapping parses a ";"-separated list of "variant:replacement"
// entries. Entries without a ":" are skipped. Variant tags are trimmed
// and lowercased; replacement text is only trimmed. A later entry for the
// same tag overwrites an earlier one.
func parseMapping(raw string) map[string]string {
	mapping := make(map[string]string)
	for _, piece := range strings.Split(raw, ";") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		kv := splitOnceTrim(piece, ":")
		if len(kv) != 2 {
			continue
		}
		variant := strings.ToLower(kv[0])
		mapping[variant] = kv[1]
	}
	return mapping
}

// splitOnceTrim splits s on the first occurrence of sep and trims each
// resulting piece. With no sep present it returns a single-element slice
// holding the trimmed whole string.
func splitOnceTrim(s, sep string) []string {
	parts := strings.SplitN(s, sep, 2)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
