package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	spacePattern = regexp.MustCompile(`\s+`)
	intPattern   = regexp.MustCompile(`\d+`)
	parenPattern = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
)

// venuePrefixes are label prefixes that sometimes precede the venue name
// on review pages ("구장 : 잠실야구장", "venue: Jamsil").
var venuePrefixes = []string{"구장:", "구장 :", "장소:", "장소 :", "venue:", "Venue:"}

// TeamCodes maps full franchise names to the short codes stored in the
// dataset. Keys are whitespace-stripped; unknown names pass through.
var TeamCodes = map[string]string{
	"LG트윈스":   "LG",
	"두산베어스":   "두산",
	"키움히어로즈":  "키움",
	"SSG랜더스":  "SSG",
	"KT위즈":    "KT",
	"한화이글스":   "한화",
	"삼성라이온즈":  "삼성",
	"KIA타이거즈": "KIA",
	"NC다이노스":  "NC",
	"롯데자이언츠":  "롯데",
}

// VenueCodes maps full ballpark names to short venue codes.
var VenueCodes = map[string]string{
	"잠실야구장":        "잠실",
	"인천SSG랜더스필드":   "문학",
	"광주-기아챔피언스필드":  "광주",
	"광주기아챔피언스필드":   "광주",
	"대구삼성라이온즈파크":   "대구",
	"대전한화생명이글스파크":  "대전",
	"대전한화생명볼파크":    "대전",
	"창원NC파크":       "창원",
	"수원KT위즈파크":     "수원",
	"사직야구장":        "사직",
	"포항야구장":        "포항",
	"울산문수야구장":      "울산",
	"고척스카이돔":       "고척",
}

// Space collapses runs of whitespace (including non-breaking spaces) into
// single spaces and trims the ends.
func Space(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}

// Int extracts the first integer substring from noisy text ("5점", " 12 ").
// Returns def when no digits are present.
func Int(s string, def int) int {
	m := intPattern.FindString(s)
	if m == "" {
		return def
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return def
	}
	return n
}

// Team canonicalizes a team name through TeamCodes. The lookup strips all
// whitespace first; names not in the table pass through unchanged.
func Team(s string) string {
	s = Space(s)
	stripped := strings.ReplaceAll(s, " ", "")
	if code, ok := TeamCodes[stripped]; ok {
		return code
	}
	return s
}

// Venue canonicalizes a ballpark name through VenueCodes, passing unknown
// names through unchanged.
func Venue(s string) string {
	s = Space(s)
	stripped := strings.ReplaceAll(s, " ", "")
	if code, ok := VenueCodes[stripped]; ok {
		return code
	}
	return s
}

// venueSet holds the canonical short codes for membership checks.
var venueSet = func() map[string]bool {
	set := make(map[string]bool, len(VenueCodes))
	for _, code := range VenueCodes {
		set[code] = true
	}
	return set
}()

// KnownVenue reports whether s names a known ballpark, in either its long
// or canonical short form.
func KnownVenue(s string) bool {
	return venueSet[Venue(s)]
}

// CleanVenue strips known label prefixes and a trailing parenthetical note
// from a raw venue string, then canonicalizes it.
// "구장 : 잠실야구장 (더블헤더 1차전)" → "잠실".
func CleanVenue(s string) string {
	s = Space(s)
	for _, p := range venuePrefixes {
		if strings.HasPrefix(s, p) {
			s = strings.TrimSpace(strings.TrimPrefix(s, p))
			break
		}
	}
	s = parenPattern.ReplaceAllString(s, "")
	return Venue(s)
}
