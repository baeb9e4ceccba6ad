package orthography

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Hint produces a level-appropriate hint for a wrong answer on correctWord.
// correctWord must be lowercased.
func Hint(levelNumber int, correctWord string) string {
	switch FocusForLevel(levelNumber) {
	case FocusBVConfusion:
		if strings.Contains(correctWord, "b") {
			return fmt.Sprintf("Nivel %d - Pista B: Se escribe con B (antes de consonante o después de M).", levelNumber)
		}
		if strings.Contains(correctWord, "v") {
			return fmt.Sprintf("Nivel %d - Pista V: Se escribe con V (después de N o terminaciones -ava, -ave).", levelNumber)
		}

	case FocusCSZConfusion:
		if strings.Contains(correctWord, "c") {
			return fmt.Sprintf("Nivel %d - Pista C: Sonido fuerte antes de A, O, U.", levelNumber)
		}
		if strings.Contains(correctWord, "s") {
			return fmt.Sprintf("Nivel %d - Pista S: Sonido suave.", levelNumber)
		}
		if strings.Contains(correctWord, "z") {
			return fmt.Sprintf("Nivel %d - Pista Z: Sonido fuerte antes de A, O, U.", levelNumber)
		}

	case FocusAccentPractice:
		return fmt.Sprintf("Nivel %d - Pista de acentos: Pronuncia fuerte la sílaba tónica y coloca la tilde.", levelNumber)

	case FocusLetterOmission:
		return fmt.Sprintf("Nivel %d - Pista: Te falta una letra. Pronuncia despacio cada sílaba.", levelNumber)

	case FocusLetterInversion:
		return fmt.Sprintf("Nivel %d - Pista: Revisa el orden de las letras, ve despacio.", levelNumber)

	case FocusSyllablePractice:
		return fmt.Sprintf("Nivel %d - Pista silábica: %s", levelNumber, SpellOut(correctWord))

	default:
		return fmt.Sprintf("Nivel %d - Pista: Divide en sílabas: %s", levelNumber, SpellOut(correctWord))
	}

	// b/v or c/s/z level with a word that has none of the drilled letters
	return fmt.Sprintf("Nivel %d - Revisa letra por letra: %s", levelNumber, SpellOut(correctWord))
}

// LevelFeedback selects the message shown for a wrong answer. Levels that
// drill a specific error report it when the answer shows that error and
// otherwise fall back to the classifier's feedback. Syllable and general
// levels always use their own level message.
func LevelFeedback(levelNumber int, userAnswer, correctWord string) string {
	switch FocusForLevel(levelNumber) {
	case FocusBVConfusion:
		if HasBVError(userAnswer, correctWord) {
			return "Este nivel practica B/V. Recuerda: B antes de consonante, V después de N."
		}
	case FocusCSZConfusion:
		if HasCSZError(userAnswer, correctWord) {
			return "Este nivel practica C/S/Z. Escucha bien: ¿sonido suave o fuerte?"
		}
	case FocusAccentPractice:
		if HasAccentError(userAnswer, correctWord) {
			return "Este nivel practica acentos. Pronuncia fuerte la sílaba tónica."
		}
	case FocusLetterOmission:
		if utf8.RuneCountInString(userAnswer) < utf8.RuneCountInString(correctWord) {
			return "Este nivel practica completar letras. Lee despacio, sílaba por sílaba."
		}
	case FocusLetterInversion:
		if HasLetterInversion(userAnswer, correctWord) {
			return "Este nivel practica el orden correcto. Ve despacio, letra por letra."
		}
	case FocusSyllablePractice:
		return "Este nivel practica separación silábica. Divide la palabra paso a paso."
	default:
		return "Revisa la escritura. Cada nivel te ayuda con una dificultad específica."
	}

	return Classify(userAnswer, correctWord).Feedback
}

// SpellOut renders a word letter by letter ("gato" -> "g - a - t - o") as a decoding aid
func SpellOut(word string) string {
	letters := make([]string, 0, utf8.RuneCountInString(word))
	for _, r := range word {
		letters = append(letters, string(r))
	}
	return strings.Join(letters, " - ")
}
