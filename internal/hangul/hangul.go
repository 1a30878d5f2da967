// internal/hangul/hangul.go
//
// Hangul syllable decomposition and initial-consonant matching.
// Responsibilities:
//   - Split a precomposed hangul syllable block into its jamo components
//     (choseong / jungseong / jongseong).
//   - Extract the initial consonant of a word's first syllable.
//   - Normalize tense (doubled) consonants to their plain base form.
//   - Test a word against a round's consonant rule (one consonant, or an
//     unordered pair of two).
//
// Notes:
//   - Only the first syllable governs matching. A rule consonant appearing
//     later in the word does not count.
//   - All functions are pure and never panic on malformed input; anything
//     that is not a hangul syllable simply fails to match.
package hangul

import "strings"

// Precomposed hangul syllables occupy U+AC00..U+D7A3, arranged as
// (choseong × 21 + jungseong) × 28 + jongseong.
const (
	syllableBase  = 0xAC00
	syllableCount = 19 * 21 * 28
)

// choseong lists the 19 possible leading consonants, in code-point order,
// as compatibility jamo (the form rules and keyboards use).
var choseong = [19]rune{
	'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ',
	'ㅅ', 'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

// jungseong lists the 21 vowels in code-point order.
var jungseong = [21]rune{
	'ㅏ', 'ㅐ', 'ㅑ', 'ㅒ', 'ㅓ', 'ㅔ', 'ㅕ', 'ㅖ', 'ㅗ', 'ㅘ', 'ㅙ',
	'ㅚ', 'ㅛ', 'ㅜ', 'ㅝ', 'ㅞ', 'ㅟ', 'ㅠ', 'ㅡ', 'ㅢ', 'ㅣ',
}

// jongseong lists the 28 trailing-consonant slots; index 0 is "no trailing
// consonant" and is represented by the zero rune.
var jongseong = [28]rune{
	0, 'ㄱ', 'ㄲ', 'ㄳ', 'ㄴ', 'ㄵ', 'ㄶ', 'ㄷ', 'ㄹ', 'ㄺ', 'ㄻ', 'ㄼ', 'ㄽ',
	'ㄾ', 'ㄿ', 'ㅀ', 'ㅁ', 'ㅂ', 'ㅄ', 'ㅅ', 'ㅆ', 'ㅇ', 'ㅈ', 'ㅊ', 'ㅋ',
	'ㅌ', 'ㅍ', 'ㅎ',
}

// tenseToPlain maps the five doubled (tense) consonants to their base form.
// A rule of "ㄱ" accepts words starting with ㄲ, and a rule of "ㄲ" behaves
// exactly like "ㄱ".
var tenseToPlain = map[rune]rune{
	'ㄲ': 'ㄱ',
	'ㄸ': 'ㄷ',
	'ㅃ': 'ㅂ',
	'ㅆ': 'ㅅ',
	'ㅉ': 'ㅈ',
}

// Syllable holds the jamo components of one precomposed syllable block.
// Jongseong is 0 when the syllable has no trailing consonant.
type Syllable struct {
	Choseong  rune
	Jungseong rune
	Jongseong rune
}

// IsSyllable reports whether r is a precomposed hangul syllable block.
func IsSyllable(r rune) bool {
	return r >= syllableBase && r < syllableBase+syllableCount
}

// Decompose splits a precomposed syllable into its components.
// Returns ok=false for anything outside the hangul syllable range.
func Decompose(r rune) (Syllable, bool) {
	if !IsSyllable(r) {
		return Syllable{}, false
	}
	idx := int(r - syllableBase)
	return Syllable{
		Choseong:  choseong[idx/(21*28)],
		Jungseong: jungseong[(idx/28)%21],
		Jongseong: jongseong[idx%28],
	}, true
}

// Choseong returns the initial consonant of the first syllable of word.
// Leading/trailing whitespace is ignored. Returns ok=false for an empty
// word or when the first rune is not a hangul syllable.
func Choseong(word string) (rune, bool) {
	word = strings.TrimSpace(word)
	for _, r := range word {
		s, ok := Decompose(r)
		if !ok {
			return 0, false
		}
		return s.Choseong, true
	}
	return 0, false
}

// NormalizeTense maps a tense consonant to its plain base; any other rune
// is returned unchanged.
func NormalizeTense(r rune) rune {
	if base, ok := tenseToPlain[r]; ok {
		return base
	}
	return r
}

// IsInitialConsonant reports whether r is one of the 19 consonants that can
// lead a syllable (plain or tense compatibility jamo).
func IsInitialConsonant(r rune) bool {
	for _, c := range choseong {
		if r == c {
			return true
		}
	}
	return false
}

// IsValidRule reports whether rule is a usable consonant rule: one or two
// initial-consonant glyphs after trimming.
func IsValidRule(rule string) bool {
	rs := []rune(strings.TrimSpace(rule))
	if len(rs) == 0 || len(rs) > 2 {
		return false
	}
	for _, r := range rs {
		if !IsInitialConsonant(r) {
			return false
		}
	}
	return true
}

// Matches reports whether word satisfies the consonant rule.
//
// The rule is a single consonant or an unordered pair; the word matches when
// the initial consonant of its FIRST syllable, after tense normalization,
// equals (either) normalized rule consonant. Empty words, non-hangul words,
// and empty or overlong rules never match.
func Matches(word, rule string) bool {
	targets := []rune(strings.TrimSpace(rule))
	if len(targets) == 0 || len(targets) > 2 {
		return false
	}
	ch, ok := Choseong(word)
	if !ok {
		return false
	}
	ch = NormalizeTense(ch)
	for _, t := range targets {
		if ch == NormalizeTense(t) {
			return true
		}
	}
	return false
}
