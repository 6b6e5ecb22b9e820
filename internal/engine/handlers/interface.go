package handlers

import (
	"encoding/json"

	"wisp-server/internal/domain"
	"wisp-server/internal/game"
)

// Encounters управляет проверкой навыка сессии. engine.Instance неявно
// реализует этот интерфейс. Методы вызываются под блокировкой инстанса.
type Encounters interface {
	StartSkillCheck(w domain.WispSnapshot)
	Strike() bool
}

// Context передает хендлеру состояние партии.
type Context struct {
	Game       *game.GameSession
	Encounters Encounters
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи сервиса напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст лога
	MsgType string // Тип лога (INFO, SUCCESS, WARNING, ERROR)
}

// HandlerFunc - это контракт для любой команды (MOVE, ANSWER, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}
