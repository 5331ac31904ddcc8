package i18n

import (
	"bytes"
	"encoding/json"
)

// LocalizedText holds one string per locale.
type LocalizedText map[Locale]string

// LocalizedList holds one ordered list of strings per locale.
type LocalizedList map[Locale][]string

// Resolve returns the value for locale, then for DefaultLocale, then "".
// Unsupported locales resolve exactly like DefaultLocale.
func (t LocalizedText) Resolve(locale Locale) string {
	if !locale.IsSupported() {
		locale = DefaultLocale
	}
	if value, ok := t[locale]; ok {
		return value
	}
	if value, ok := t[DefaultLocale]; ok {
		return value
	}
	return ""
}

// ResolveOr behaves like Resolve but substitutes fallback for an empty result.
func (t LocalizedText) ResolveOr(locale Locale, fallback string) string {
	if value := t.Resolve(locale); value != "" {
		return value
	}
	return fallback
}

// Resolve returns a copy of the list for locale, then for DefaultLocale.
// The result is never nil.
func (l LocalizedList) Resolve(locale Locale) []string {
	if !locale.IsSupported() {
		locale = DefaultLocale
	}
	values, ok := l[locale]
	if !ok {
		values, ok = l[DefaultLocale]
	}
	if !ok {
		return []string{}
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// UnmarshalJSON accepts an object of locale to string. Entries that are not
// strings are dropped, and a bare string is stored under DefaultLocale, so
// partially malformed content still decodes.
func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	out := LocalizedText{}
	trimmed := bytes.TrimSpace(data)

	var bare string
	if err := json.Unmarshal(trimmed, &bare); err == nil {
		if bare != "" {
			out[DefaultLocale] = bare
		}
		*t = out
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		*t = out
		return nil
	}
	for key, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			continue
		}
		out[Locale(key)] = s
	}
	*t = out
	return nil
}

// UnmarshalJSON accepts an object of locale to list of strings. A single
// string value is treated as a one-item list and non-string items are dropped.
func (l *LocalizedList) UnmarshalJSON(data []byte) error {
	out := LocalizedList{}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(data), &raw); err != nil {
		*l = out
		return nil
	}
	for key, value := range raw {
		if items, ok := decodeStringList(value); ok {
			out[Locale(key)] = items
		}
	}
	*l = out
	return nil
}

func decodeStringList(value json.RawMessage) ([]string, bool) {
	var single string
	if err := json.Unmarshal(value, &single); err == nil {
		return []string{single}, true
	}

	var items []json.RawMessage
	if err := json.Unmarshal(value, &items); err != nil {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			continue
		}
		out = append(out, s)
	}
	return out, true
}
