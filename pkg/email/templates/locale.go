package templates

import "golang.org/x/text/language"

// Supported lists the locales emails are written in. French comes first and
// is the fallback.
var Supported = []language.Tag{language.French, language.English}

var matcher = language.NewMatcher(Supported)

// MatchLocale picks the best supported locale for an Accept-Language value.
func MatchLocale(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Supported[0]
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Supported[0]
	}
	return Supported[idx]
}

func isEnglish(tag language.Tag) bool {
	base, _ := tag.Base()
	en, _ := language.English.Base()
	return base == en
}
