package extract

import (
	"strings"

	"github.com/hyunseok-yang/kbo-boxscores/internal/normalize"
)

// plateKind classifies one plate-appearance cell from the batting grid.
type plateKind int

const (
	plateUnknown plateKind = iota
	plateSingle
	plateDouble
	plateTriple
	plateHomeRun
	plateWalk
	plateHitByPitch
	plateSacFly
	plateSacBunt
	plateOut
)

// Keyword tables for plate-appearance cells. Review pages render both the
// long forms ("2루타", "희생번트") and the compact scorer notation where
// the position abbreviation is followed by a one-character outcome suffix
// ("좌2" = double to left, "중안" = single to center, "우홈" = home run to
// right). Longer keywords are checked before the one-character suffixes.
var plateKeywords = []struct {
	kind  plateKind
	words []string
}{
	{plateHomeRun, []string{"홈런"}},
	{plateTriple, []string{"3루타"}},
	{plateDouble, []string{"2루타"}},
	{plateSingle, []string{"안타", "내야안타"}},
	{plateWalk, []string{"볼넷", "4구", "고4"}},
	{plateHitByPitch, []string{"사구", "몸에맞는공"}},
	{plateSacFly, []string{"희생플라이", "희비", "희플"}},
	{plateSacBunt, []string{"희생번트", "희번"}},
	{plateOut, []string{"삼진", "땅볼", "뜬공", "직선타", "병살", "아웃", "실책", "야수선택"}},
}

// plateSuffixes cover the compact notation. Checked only after every
// keyword misses, so "2루타" never falls through to the "2" suffix of a
// different meaning.
var plateSuffixes = []struct {
	kind   plateKind
	suffix string
}{
	{plateHomeRun, "홈"},
	{plateTriple, "3"},
	{plateDouble, "2"},
	{plateSingle, "안"},
	{plateOut, "땅"},
	{plateOut, "비"},
	{plateOut, "직"},
	{plateOut, "파"},
}

// classifyPlate maps one plate-appearance cell to its kind. Empty and
// unrecognized cells are plateUnknown and count toward nothing.
func classifyPlate(cell string) plateKind {
	s := strings.ReplaceAll(normalize.Space(cell), " ", "")
	if s == "" || s == "-" {
		return plateUnknown
	}
	for _, entry := range plateKeywords {
		for _, w := range entry.words {
			if strings.Contains(s, w) {
				return entry.kind
			}
		}
	}
	for _, entry := range plateSuffixes {
		if strings.HasSuffix(s, entry.suffix) {
			return entry.kind
		}
	}
	return plateUnknown
}

// isHit reports whether the plate appearance produced a base hit.
func (k plateKind) isHit() bool {
	switch k {
	case plateSingle, plateDouble, plateTriple, plateHomeRun:
		return true
	}
	return false
}

// countsAtBat reports whether the plate appearance counts as an official
// at-bat: hits and outs do, walks, hit-by-pitch, and sacrifices do not.
func (k plateKind) countsAtBat() bool {
	return k.isHit() || k == plateOut
}
