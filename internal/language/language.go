package language

import (
	"strings"

	xlanguage "golang.org/x/text/language"
)

type entry struct {
	code2   string   // ISO 639-1
	code3   string   // ISO 639-2 primary
	alt3    string   // ISO 639-2 bibliographic variant (e.g. "fre" vs "fra")
	display string   // Human-readable name
	words   []string // Full word forms (e.g. "english")
}

var languages = []entry{
	{"en", "eng", "", "English", []string{"english"}},
	{"es", "spa", "", "Spanish", []string{"spanish", "espanol"}},
	{"fr", "fra", "fre", "French", []string{"french", "francais"}},
	{"de", "deu", "ger", "German", []string{"german", "deutsch"}},
	{"it", "ita", "", "Italian", []string{"italian"}},
	{"pt", "por", "", "Portuguese", []string{"portuguese"}},
	{"ja", "jpn", "", "Japanese", []string{"japanese"}},
	{"ko", "kor", "", "Korean", []string{"korean"}},
	{"zh", "zho", "chi", "Chinese", []string{"chinese"}},
	{"ru", "rus", "", "Russian", []string{"russian"}},
	{"nl", "nld", "dut", "Dutch", []string{"dutch"}},
	{"pl", "pol", "", "Polish", []string{"polish"}},
	{"sv", "swe", "", "Swedish", []string{"swedish"}},
	{"no", "nor", "", "Norwegian", []string{"norwegian"}},
}

var (
	byCode map[string]*entry
	byWord map[string]*entry
)

func init() {
	byCode = make(map[string]*entry, len(languages)*3)
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode[e.code2] = e
		byCode[e.code3] = e
		if e.alt3 != "" {
			byCode[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func clean(code string) string {
	code = strings.ReplaceAll(code, "\u0000", "")
	return strings.ToLower(strings.TrimSpace(code))
}

// ToISO2 converts a language code, word form, or BCP 47 tag to its ISO 639-1
// code. Codes missing from the local table are resolved through the CLDR base
// language registry. Unrecognized input yields "".
func ToISO2(code string) string {
	code = clean(code)
	if code == "" {
		return ""
	}
	if e, ok := byCode[code]; ok {
		return e.code2
	}
	if e, ok := byWord[code]; ok {
		return e.code2
	}
	if idx := strings.IndexAny(code, "-_"); idx > 0 {
		return ToISO2(code[:idx])
	}
	base, err := xlanguage.ParseBase(code)
	if err != nil {
		return ""
	}
	if iso2 := base.String(); len(iso2) == 2 {
		return iso2
	}
	return ""
}

// Matches reports whether a stream language tag names the wanted language.
// An empty want matches nothing.
func Matches(tag, want string) bool {
	want = ToISO2(want)
	if want == "" {
		return false
	}
	return ToISO2(tag) == want
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if clean(code) == "" {
		return "Unknown"
	}
	if e, ok := byCode[ToISO2(code)]; ok {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// ExtractFromTags extracts and normalizes the language from stream metadata tags.
func ExtractFromTags(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}
	for _, key := range []string{"language", "LANGUAGE", "Language", "language_ietf", "lang", "LANG"} {
		if value := clean(tags[key]); value != "" {
			return value
		}
	}
	return ""
}
