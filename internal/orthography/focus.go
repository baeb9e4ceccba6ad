package orthography

// TherapeuticFocus is the spelling difficulty a level is designed to drill
type TherapeuticFocus string

const (
	FocusBasicWriting     TherapeuticFocus = "basic_writing"
	FocusBVConfusion      TherapeuticFocus = "b_v_confusion"
	FocusCSZConfusion     TherapeuticFocus = "c_s_z_confusion"
	FocusAccentPractice   TherapeuticFocus = "accent_practice"
	FocusLetterOmission   TherapeuticFocus = "letter_omission"
	FocusLetterInversion  TherapeuticFocus = "letter_inversion"
	FocusSyllablePractice TherapeuticFocus = "syllable_practice"
	FocusComplexWords     TherapeuticFocus = "complex_words"
	FocusMixedPractice    TherapeuticFocus = "mixed_practice"
	FocusAdvancedWriting  TherapeuticFocus = "advanced_writing"
)

// FocusForLevel maps a level number to its therapeutic focus.
// Unknown levels fall back to basic writing.
func FocusForLevel(levelNumber int) TherapeuticFocus {
	switch levelNumber {
	case 1:
		return FocusBasicWriting
	case 2:
		return FocusBVConfusion
	case 3:
		return FocusCSZConfusion
	case 4:
		return FocusAccentPractice
	case 5:
		return FocusLetterOmission
	case 6:
		return FocusLetterInversion
	case 7:
		return FocusSyllablePractice
	case 8:
		return FocusComplexWords
	case 9:
		return FocusMixedPractice
	case 10:
		return FocusAdvancedWriting
	default:
		return FocusBasicWriting
	}
}

// InstructionForLevel returns the instruction shown to the child when a level starts
func InstructionForLevel(levelNumber int) string {
	switch levelNumber {
	case 1:
		return "Nivel 1: Escritura básica - Escribe palabras simples correctamente."
	case 2:
		return "Nivel 2: Practica B y V - Presta atención al sonido y las reglas."
	case 3:
		return "Nivel 3: Practica C, S y Z - Escucha bien si el sonido es suave o fuerte."
	case 4:
		return "Nivel 4: Practica acentos - Encuentra la sílaba tónica y coloca tildes."
	case 5:
		return "Nivel 5: Letras completas - Asegúrate de no omitir ninguna letra."
	case 6:
		return "Nivel 6: Orden correcto - Revisa que las letras estén en su lugar."
	case 7:
		return "Nivel 7: Separación silábica - Divide las palabras correctamente."
	case 8:
		return "Nivel 8: Palabras complejas - Combina todo lo aprendido."
	case 9:
		return "Nivel 9: Práctica mixta - Demuestra todo tu conocimiento."
	case 10:
		return "Nivel 10: Maestro de la escritura - ¡Eres un experto!"
	default:
		return "Escribe las palabras correctamente."
	}
}
