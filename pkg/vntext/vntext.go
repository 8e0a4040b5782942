// Package vntext provides text canonicalization and language detection for
// Vietnamese/English user messages.
package vntext

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Language is the detected language of a message.
type Language string

const (
	LanguageVietnamese Language = "vi"
	LanguageEnglish    Language = "en"
	LanguageMixed      Language = "mixed"
)

// Vietnamese keywords are matched against the diacritic-stripped text, so they
// are listed in stripped form.
var vietnameseKeywords = []string{
	"nhiet do", "do am", "anh sang", "muc nuoc", "luong mua", "cam bien",
	"thiet bi", "may bom", "den", "bat", "tat", "mo", "dong",
	"hien tai", "bay gio", "hom nay", "hom qua", "truoc", "luc", "vao luc",
	"phut", "tieng", "bao nhieu", "la gi", "trang thai", "giup", "khong",
	"tuoi", "vuon", "dat",
}

var englishKeywords = []string{
	"temperature", "humidity", "light", "pump", "water level", "rainfall",
	"soil", "sensor", "device", "turn", "switch", "status", "now", "current",
	"ago", "minute", "hour", "day", "today", "yesterday", "what", "how",
	"please", "the", "is",
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases the text, strips diacritics via canonical
// decomposition, maps đ to d, and trims surrounding whitespace.
// Empty input yields an empty string.
func Normalize(text string) string {
	lowered := strings.ToLower(text)
	stripped, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		stripped = lowered
	}
	stripped = strings.ReplaceAll(stripped, "đ", "d")
	return strings.TrimSpace(stripped)
}

// Detect scores Vietnamese vs English keyword hits and returns the language.
// A margin of one hit is required before committing to either language;
// anything closer (including zero hits on both sides) is reported as mixed.
func Detect(text string) Language {
	normalized := Normalize(text)
	lowered := strings.ToLower(text)

	var viScore, enScore int
	for _, kw := range vietnameseKeywords {
		if strings.Contains(normalized, kw) {
			viScore++
		}
	}
	for _, kw := range englishKeywords {
		if containsWord(lowered, kw) {
			enScore++
		}
	}

	switch {
	case viScore >= enScore+1:
		return LanguageVietnamese
	case enScore >= viScore+1:
		return LanguageEnglish
	default:
		return LanguageMixed
	}
}

// Variants returns the text forms downstream keyword matching should iterate:
// the normalized text for Vietnamese, the lowercased raw text for English,
// and both (deduplicated) for mixed input.
func Variants(text string, lang Language) []string {
	normalized := Normalize(text)
	lowered := strings.ToLower(strings.TrimSpace(text))

	switch lang {
	case LanguageVietnamese:
		return []string{normalized}
	case LanguageEnglish:
		return []string{lowered}
	default:
		if normalized == lowered {
			return []string{normalized}
		}
		return []string{normalized, lowered}
	}
}

// ContainsAny reports whether any text variant contains any of the keywords.
func ContainsAny(texts []string, keywords ...string) bool {
	for _, t := range texts {
		for _, kw := range keywords {
			if strings.Contains(t, kw) {
				return true
			}
		}
	}
	return false
}

// ContainsAnyWord is like ContainsAny but matches on word boundaries, so a
// short keyword like "bat" or "mo" cannot fire inside a longer token. Multi
// word phrases are supported; boundaries apply to the whole phrase.
func ContainsAnyWord(texts []string, keywords ...string) bool {
	for _, t := range texts {
		for _, kw := range keywords {
			if kw != "" && containsWord(t, kw) {
				return true
			}
		}
	}
	return false
}

// containsWord matches a keyword on rough word boundaries so short English
// words ("is", "the") do not fire inside longer tokens.
func containsWord(text, word string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isWordChar(rune(text[start-1]))
		afterOK := end >= len(text) || !isWordChar(rune(text[end]))
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
