package orthography

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		correct string
		want    ErrorType
	}{
		{"b written for v", "enbiar", "enviar", ErrorBVConfusion},
		{"v written for b", "vurro", "burro", ErrorBVConfusion},
		{"b written for initial v", "baca", "vaca", ErrorBVConfusion},
		{"s written for z", "sapato", "zapato", ErrorCSZConfusion},
		{"z written for c", "zielo", "cielo", ErrorCSZConfusion},
		{"missing tilde", "camion", "camión", ErrorAccent},
		{"missing initial tilde", "arbol", "árbol", ErrorAccent},
		{"n written for ñ", "muneca", "muñeca", ErrorAccent},
		{"missing letter", "gato", "gatos", ErrorLetterOmission},
		{"missing inner letter", "pato", "plato", ErrorLetterOmission},
		{"extra letter", "gatos", "gato", ErrorLetterAddition},
		{"swapped letters", "aot", "ato", ErrorLetterInversion},
		{"swapped inner letters", "tirge", "tigre", ErrorLetterInversion},
		{"unrelated word", "perro", "gatos", ErrorOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.answer, tt.correct)
			assert.Equal(t, tt.want, got.ErrorType)
			assert.Equal(t, errorFeedback[tt.want], got.Feedback)
			assert.NotEmpty(t, got.Feedback)
		})
	}
}

func TestClassifyIdenticalWords(t *testing.T) {
	got := Classify("sazon", "sazon")

	assert.Equal(t, ErrorNone, got.ErrorType)
	assert.Empty(t, got.Feedback)
}

func TestClassifyPriority(t *testing.T) {
	// "cabeza" -> "caveza" is both a b/v swap and a c/s/z merge match;
	// b/v is checked first.
	assert.Equal(t, ErrorBVConfusion, Classify("caveza", "cabeza").ErrorType)

	// c typed for s
	assert.Equal(t, ErrorCSZConfusion, Classify("cancion", "cansion").ErrorType)

	// Omission is only reported when no substitution rule matched.
	assert.Equal(t, ErrorLetterOmission, Classify("cancon", "canción").ErrorType)
}

func TestPredicates(t *testing.T) {
	assert.True(t, HasBVError("bentana", "ventana"))
	assert.False(t, HasBVError("ventana", "bentana2"))

	assert.True(t, HasCSZError("tasa", "taza"))
	assert.False(t, HasCSZError("tasa", "tapa"))

	assert.True(t, HasAccentError("lapiz", "lápiz"))
	assert.True(t, HasAccentError("lápiz", "lapiz"))
	assert.False(t, HasAccentError("lapis", "lápiz"))

	assert.True(t, HasLetterInversion("lirbo", "libro"))
	assert.False(t, HasLetterInversion("libros", "libro"))
	assert.False(t, HasLetterInversion("libre", "libro"))
}

func TestHasLetterInversionCountsRunes(t *testing.T) {
	// "á" is one rune but two bytes; rune comparison keeps these the same length
	assert.True(t, HasLetterInversion("rábol", "árbol"))
}
