package language

import (
	"strings"

	xlanguage "golang.org/x/text/language"
)

// Option is one selectable track language.
type Option struct {
	Name     string
	ISO6392B string
	ISO6392T string
	ISO6391  string
	ISO6393  string
	Custom   string
}

// Undetermined is assigned whenever a language cannot be resolved.
var Undetermined = Option{
	Name:     "Undetermined",
	ISO6392B: "und",
	ISO6392T: "und",
	ISO6393:  "und",
}

// Code returns the value written to the Matroska language element: the
// custom code when present, else the bibliographic code, else the
// terminologic one.
func (o Option) Code() string {
	switch {
	case o.Custom != "":
		return o.Custom
	case o.ISO6392B != "":
		return o.ISO6392B
	case o.ISO6392T != "":
		return o.ISO6392T
	default:
		return Undetermined.ISO6392B
	}
}

// IsUndetermined reports whether o is the Undetermined sentinel or the zero value.
func (o Option) IsUndetermined() bool {
	return o == Undetermined || o == Option{}
}

// String returns "Name (code)".
func (o Option) String() string {
	return o.Name + " (" + o.Code() + ")"
}

type seed struct {
	code1 string // ISO 639-1
	bib   string // ISO 639-2/B
	name  string
}

var seeds = []seed{
	{"en", "eng", "English"},
	{"fr", "fre", "French"},
	{"de", "ger", "German"},
	{"es", "spa", "Spanish"},
	{"it", "ita", "Italian"},
	{"pt", "por", "Portuguese"},
	{"nl", "dut", "Dutch"},
	{"sv", "swe", "Swedish"},
	{"da", "dan", "Danish"},
	{"no", "nor", "Norwegian"},
	{"fi", "fin", "Finnish"},
	{"is", "ice", "Icelandic"},
	{"pl", "pol", "Polish"},
	{"cs", "cze", "Czech"},
	{"sk", "slo", "Slovak"},
	{"hu", "hun", "Hungarian"},
	{"ro", "rum", "Romanian"},
	{"bg", "bul", "Bulgarian"},
	{"hr", "hrv", "Croatian"},
	{"sr", "srp", "Serbian"},
	{"sl", "slv", "Slovenian"},
	{"el", "gre", "Greek"},
	{"tr", "tur", "Turkish"},
	{"ru", "rus", "Russian"},
	{"uk", "ukr", "Ukrainian"},
	{"ar", "ara", "Arabic"},
	{"he", "heb", "Hebrew"},
	{"fa", "per", "Persian"},
	{"hi", "hin", "Hindi"},
	{"bn", "ben", "Bengali"},
	{"ta", "tam", "Tamil"},
	{"te", "tel", "Telugu"},
	{"ur", "urd", "Urdu"},
	{"th", "tha", "Thai"},
	{"vi", "vie", "Vietnamese"},
	{"id", "ind", "Indonesian"},
	{"ms", "may", "Malay"},
	{"ja", "jpn", "Japanese"},
	{"ko", "kor", "Korean"},
	{"zh", "chi", "Chinese"},
	{"ca", "cat", "Catalan"},
	{"eu", "baq", "Basque"},
	{"gl", "glg", "Galician"},
	{"et", "est", "Estonian"},
	{"lv", "lav", "Latvian"},
	{"lt", "lit", "Lithuanian"},
	{"mk", "mac", "Macedonian"},
	{"sq", "alb", "Albanian"},
	{"hy", "arm", "Armenian"},
	{"ka", "geo", "Georgian"},
	{"cy", "wel", "Welsh"},
	{"ga", "gle", "Irish"},
	{"la", "lat", "Latin"},
}

// builtin is a package-level initializer so tables built during variable
// initialization see the full list.
var builtin = buildBuiltin()

func buildBuiltin() []Option {
	options := make([]Option, 0, len(seeds))
	for _, s := range seeds {
		opt := Option{Name: s.name, ISO6392B: s.bib, ISO6391: s.code1}
		if base, err := xlanguage.ParseBase(s.code1); err == nil {
			opt.ISO6392T = base.ISO3()
			opt.ISO6393 = base.ISO3()
		}
		if opt.ISO6392T == "" {
			opt.ISO6392T = s.bib
			opt.ISO6393 = s.bib
		}
		options = append(options, opt)
	}
	return options
}

// Builtin returns a copy of the ISO 639 option table.
func Builtin() []Option {
	return append([]Option(nil), builtin...)
}

// NewCustom builds an option that is only addressable by its display name
// and custom code.
func NewCustom(name, code string) Option {
	return Option{Name: strings.TrimSpace(name), Custom: strings.TrimSpace(code)}
}
