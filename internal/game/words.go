package game

import "strings"

// Word - пара "слово на изучаемом языке - перевод"
type Word struct {
	ID         string `json:"id"`
	English    string `json:"english"`
	TargetWord string `json:"targetWord"`
}

// WordProvider отдает словарь для квиза. Пустой список допустим:
// тогда сокровища собираются без вопроса.
type WordProvider interface {
	Words(language string) ([]Word, error)
}

// StaticWords - словарь в памяти, ключ - язык
type StaticWords map[string][]Word

func (s StaticWords) Words(language string) ([]Word, error) {
	words := s[strings.ToLower(language)]
	out := make([]Word, len(words))
	copy(out, words)
	return out, nil
}

// FallbackProvider отдает встроенные словари
type FallbackProvider struct{}

func (FallbackProvider) Words(language string) ([]Word, error) {
	return FallbackWords(language), nil
}

// Languages - языки со встроенным словарем
var Languages = []string{"salish", "italian"}

// FallbackWords - встроенный словарь. Неизвестный язык получает salish.
func FallbackWords(language string) []Word {
	if strings.ToLower(language) == "italian" {
		return []Word{
			{ID: "it1", English: "hello", TargetWord: "ciao"},
			{ID: "it2", English: "thank you", TargetWord: "grazie"},
			{ID: "it3", English: "water", TargetWord: "acqua"},
			{ID: "it4", English: "tree", TargetWord: "albero"},
			{ID: "it5", English: "mountain", TargetWord: "montagna"},
		}
	}
	return []Word{
		{ID: "sa1", English: "hello", TargetWord: "huy"},
		{ID: "sa2", English: "thank you", TargetWord: "huy' ch q'u"},
		{ID: "sa3", English: "water", TargetWord: "qʷəlúltxʷ"},
		{ID: "sa4", English: "tree", TargetWord: "sc'əɬálqəb"},
		{ID: "sa5", English: "mountain", TargetWord: "tukʷtukʷəʔtəd"},
	}
}
