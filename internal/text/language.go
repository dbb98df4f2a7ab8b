package text

// languageOrder fixes the order codes are reported in.
var languageOrder = []string{"zh", "ja", "en", "ko", "yue"}

var supportedLanguages = func() map[string]struct{} {
	m := make(map[string]struct{}, len(languageOrder))
	for _, c := range languageOrder {
		m[c] = struct{}{}
	}
	return m
}()

// IsSupportedLanguage checks a recognition language code.
func IsSupportedLanguage(code string) bool {
	_, ok := supportedLanguages[code]
	return ok
}

// SupportedLanguages returns the accepted language codes.
func SupportedLanguages() []string {
	out := make([]string, len(languageOrder))
	copy(out, languageOrder)
	return out
}
