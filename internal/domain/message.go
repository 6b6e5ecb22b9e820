package domain

// Типы сообщений журнала
const (
	MsgInfo    = "INFO"
	MsgSuccess = "SUCCESS"
	MsgWarning = "WARNING"
	MsgError   = "ERROR"
)

// Message - запись в журнале игры
type Message struct {
	Tick int    `json:"tick"`
	Text string `json:"text"`
	Type string `json:"type"` // INFO, SUCCESS, WARNING, ERROR
}
