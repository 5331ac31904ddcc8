package i18n

// Locale is one of the language tags content can be served in.
type Locale string

const (
	English Locale = "en"
	French  Locale = "fr"
	Arabic  Locale = "ar"

	DefaultLocale = English
)

var supportedLocales = []Locale{English, French, Arabic}

func SupportedLocales() []Locale {
	out := make([]Locale, len(supportedLocales))
	copy(out, supportedLocales)
	return out
}

func (l Locale) IsSupported() bool {
	switch l {
	case English, French, Arabic:
		return true
	default:
		return false
	}
}

// NormalizeLocale maps a raw request value onto a supported locale.
// Anything outside the supported set, including case or region variants,
// becomes DefaultLocale.
func NormalizeLocale(raw string) Locale {
	locale := Locale(raw)
	if locale.IsSupported() {
		return locale
	}
	return DefaultLocale
}

func (l Locale) String() string {
	return string(l)
}
