package casing

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ToSnakeCase converts a camelCase key into snake_case.
//
// A word starts at an upper-case rune that follows a non-upper rune, or at
// the last upper-case rune of an acronym that is followed by a lower-case
// rune. Words are lower-cased and joined with '_':
//
//	lastName      -> last_name
//	myURLProperty -> my_url_property
//	userID        -> user_id
func ToSnakeCase(key string) string {
	if key == "" {
		return key
	}
	runes := []rune(key)
	var b strings.Builder
	b.Grow(len(key) + 4)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if !unicode.IsUpper(prev) || nextLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// FromSnakeCase converts a snake_case key into camelCase.
//
// Leading and trailing underscores are preserved. A key with a single
// component is returned unchanged; otherwise the first component is
// lower-cased and every following one is capitalized:
//
//	last_name   -> lastName
//	_user_id_   -> _userId_
//	alreadyCamel -> alreadyCamel
func FromSnakeCase(key string) string {
	start := strings.IndexFunc(key, func(r rune) bool { return r != '_' })
	if start < 0 {
		return key
	}
	end := strings.LastIndexFunc(key, func(r rune) bool { return r != '_' }) + 1

	core := key[start:end]
	parts := strings.FieldsFunc(core, func(r rune) bool { return r == '_' })
	if len(parts) == 1 {
		return key
	}

	var b strings.Builder
	b.Grow(len(key))
	b.WriteString(key[:start])
	b.WriteString(strings.ToLower(parts[0]))
	for _, p := range parts[1:] {
		b.WriteString(capitalize(p))
	}
	b.WriteString(key[end:])
	return b.String()
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
