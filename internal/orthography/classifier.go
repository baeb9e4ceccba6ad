// Package orthography classifies Spanish spelling mistakes and produces
// level-aware feedback and hints for children practising a word.
package orthography

import (
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrorType is the pedagogical category of a wrong answer
type ErrorType string

const (
	ErrorNone            ErrorType = ""
	ErrorBVConfusion     ErrorType = "confusion_b_v"
	ErrorCSZConfusion    ErrorType = "confusion_c_s_z"
	ErrorAccent          ErrorType = "accent_error"
	ErrorLetterOmission  ErrorType = "letter_omission"
	ErrorLetterAddition  ErrorType = "letter_addition"
	ErrorLetterInversion ErrorType = "letter_inversion"
	ErrorOther           ErrorType = "other_error"
)

var errorFeedback = map[ErrorType]string{
	ErrorBVConfusion:     "Recuerda: La B se usa antes de consonante (ej: blanco) y la V después de N (ej: enviar).",
	ErrorCSZConfusion:    "Atención a los sonidos: C (antes de a,o,u), S (sonido suave), Z (antes de a,o,u).",
	ErrorAccent:          "Recuerda las reglas de acentuación. Todas las palabras tienen sílaba tónica.",
	ErrorLetterOmission:  "Te falta una letra. Lee despacio y pronuncia cada sílaba.",
	ErrorLetterAddition:  "Has agregado una letra de más. Revisa letra por letra.",
	ErrorLetterInversion: "Has cambiado el orden de algunas letras. Ve despacio.",
	ErrorOther:           "No coincide con la palabra correcta. Inténtalo de nuevo.",
}

// Analysis is the result of classifying a wrong answer
type Analysis struct {
	ErrorType ErrorType
	Feedback  string
}

// Classify determines why userAnswer differs from correctWord. Both inputs
// must already be normalized (trimmed and lowercased). Rules are tried in a
// fixed order and the first match wins, so an answer that is both shorter and
// a b/v swap is reported as a b/v confusion. Identical inputs yield ErrorNone.
func Classify(userAnswer, correctWord string) Analysis {
	if userAnswer == correctWord {
		return Analysis{ErrorType: ErrorNone}
	}

	answerLen := utf8.RuneCountInString(userAnswer)
	correctLen := utf8.RuneCountInString(correctWord)

	var errorType ErrorType
	switch {
	case HasBVError(userAnswer, correctWord):
		errorType = ErrorBVConfusion
	case HasCSZError(userAnswer, correctWord):
		errorType = ErrorCSZConfusion
	case HasAccentError(userAnswer, correctWord):
		errorType = ErrorAccent
	case answerLen < correctLen:
		errorType = ErrorLetterOmission
	case answerLen > correctLen:
		errorType = ErrorLetterAddition
	case HasLetterInversion(userAnswer, correctWord):
		errorType = ErrorLetterInversion
	default:
		errorType = ErrorOther
	}

	return Analysis{ErrorType: errorType, Feedback: errorFeedback[errorType]}
}

// HasBVError reports whether swapping every b for v (or every v for b) in the
// answer yields the correct word.
func HasBVError(userAnswer, correctWord string) bool {
	return strings.ReplaceAll(userAnswer, "b", "v") == correctWord ||
		strings.ReplaceAll(userAnswer, "v", "b") == correctWord
}

var cszMerger = strings.NewReplacer("c", "*", "s", "*", "z", "*")

// HasCSZError reports whether the strings match once c, s and z are treated as the same letter
func HasCSZError(userAnswer, correctWord string) bool {
	return cszMerger.Replace(userAnswer) == cszMerger.Replace(correctWord)
}

// HasAccentError reports whether the strings match once diacritical marks are removed
func HasAccentError(userAnswer, correctWord string) bool {
	return stripAccents(userAnswer) == stripAccents(correctWord)
}

// HasLetterInversion reports whether the answer uses exactly the letters of
// the correct word in a different order.
func HasLetterInversion(userAnswer, correctWord string) bool {
	if utf8.RuneCountInString(userAnswer) != utf8.RuneCountInString(correctWord) {
		return false
	}
	return sortedRunes(userAnswer) == sortedRunes(correctWord)
}

// combining diacritical marks block
func isCombiningMark(r rune) bool {
	return r >= 0x0300 && r <= 0x036f
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.Predicate(isCombiningMark)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func sortedRunes(s string) string {
	r := []rune(s)
	sort.Slice(r, func(i, j int) bool { return r[i] < r[j] })
	return string(r)
}
