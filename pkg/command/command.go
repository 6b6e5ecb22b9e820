// Package command разбирает текстовые команды игрока ("go north",
// "answer thank you", "strike") в api.ClientCommand. Грамматика задана
// структурами с тегами Participle.
package command

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"wisp-server/pkg/api"
)

// Line - одна команда
type Line struct {
	Move     *Move     `  @@`
	Strike   bool      `| @("strike" | "catch" | "hit")`
	Look     bool      `| @("look" | "init")`
	NewMap   bool      `| @("new" "map" | "newmap" | "regenerate")`
	Answer   *Answer   `| @@`
	Teleport *Teleport `| @@`
	Spawn    *Spawn    `| @@`
}

// Move: [go|move|walk] direction
type Move struct {
	Direction string `("go" | "move" | "walk")? @("up" | "down" | "left" | "right" | "north" | "south" | "east" | "west" | "n" | "s" | "e" | "w")`
}

// Answer: answer|say word+
type Answer struct {
	Words []string `("answer" | "say") @Ident+`
}

// Teleport: teleport x y
type Teleport struct {
	X int `"teleport" @Number`
	Y int `@Number`
}

// Spawn: spawn rarity [at] x y
type Spawn struct {
	Rarity string `"spawn" @("common" | "uncommon" | "rare") "at"?`
	X      int    `@Number`
	Y      int    `@Number`
}

var commandLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Punct", Pattern: `[.,!?]+`},
	{Name: "Number", Pattern: `-?[0-9]+`},
	// Буквы любых алфавитов: ответы бывают с апострофами и дефисами
	{Name: "Ident", Pattern: `[\p{L}'][\p{L}\p{M}'-]*`},
})

// Parser - разборщик строки команды
var Parser = participle.MustBuild[Line](
	participle.Lexer(commandLexer),
	participle.Elide("Whitespace", "Punct"),
	participle.CaseInsensitive("Ident"),
	participle.UseLookahead(2),
)

// Parse разбирает строку в команду протокола
func Parse(text string) (api.ClientCommand, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return api.ClientCommand{}, fmt.Errorf("empty command")
	}

	line, err := Parser.ParseString("", text)
	if err != nil {
		return api.ClientCommand{}, fmt.Errorf("parse %q: %w", text, err)
	}
	return line.ToCommand()
}

// ToCommand конвертирует разобранную строку в api.ClientCommand
func (l *Line) ToCommand() (api.ClientCommand, error) {
	switch {
	case l.Move != nil:
		return withPayload("MOVE", api.DirectionPayload{Direction: strings.ToLower(l.Move.Direction)})
	case l.Strike:
		return api.ClientCommand{Action: "STRIKE"}, nil
	case l.Look:
		return api.ClientCommand{Action: "INIT"}, nil
	case l.NewMap:
		return api.ClientCommand{Action: "NEW_MAP"}, nil
	case l.Answer != nil:
		return withPayload("ANSWER", api.AnswerPayload{Answer: strings.Join(l.Answer.Words, " ")})
	case l.Teleport != nil:
		return withPayload("TELEPORT", api.PositionPayload{X: l.Teleport.X, Y: l.Teleport.Y})
	case l.Spawn != nil:
		return withPayload("SPAWN_WISP", api.SpawnWispPayload{
			Rarity: strings.ToLower(l.Spawn.Rarity),
			X:      l.Spawn.X,
			Y:      l.Spawn.Y,
		})
	}
	return api.ClientCommand{}, fmt.Errorf("empty command")
}

func withPayload(action string, payload any) (api.ClientCommand, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return api.ClientCommand{}, fmt.Errorf("marshal %s payload: %w", action, err)
	}
	return api.ClientCommand{Action: action, Payload: raw}, nil
}
