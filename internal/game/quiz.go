package game

import (
	"math/rand"
	"strings"

	"wisp-server/internal/domain"
)

// QuizOptions - сколько вариантов ответа показывать
const QuizOptions = 4

// Quiz - вопрос на сокровище: перевести TargetWord на английский
type Quiz struct {
	Treasure domain.Position `json:"treasure"`
	Word     Word            `json:"word"`
	Options  []string        `json:"options"`
}

// NewQuiz выбирает случайное слово и до трех отвлекающих вариантов
func NewQuiz(words []Word, treasure domain.Position, rng *rand.Rand) *Quiz {
	if len(words) == 0 {
		return nil
	}
	word := words[rng.Intn(len(words))]

	options := []string{word.English}
	seen := map[string]bool{strings.ToLower(word.English): true}
	for _, idx := range rng.Perm(len(words)) {
		if len(options) == QuizOptions {
			break
		}
		eng := words[idx].English
		if key := strings.ToLower(eng); !seen[key] {
			seen[key] = true
			options = append(options, eng)
		}
	}
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return &Quiz{Treasure: treasure, Word: word, Options: options}
}

// Check сравнивает ответ без учета регистра и крайних пробелов
func (q *Quiz) Check(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), q.Word.English)
}

func (q *Quiz) clone() *Quiz {
	cp := *q
	cp.Options = append([]string(nil), q.Options...)
	return &cp
}
