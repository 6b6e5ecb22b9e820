package engine

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"wisp-server/internal/domain"
	"wisp-server/pkg/api"
	"wisp-server/pkg/logger"
)

// AddLog добавляет запись в журнал инстанса. Вызывается под i.mu.
func (i *Instance) AddLog(text, logType string) {
	if logType == "" {
		logType = domain.MsgInfo
	}
	i.logSeq++
	i.Logs = append(i.Logs, api.LogEntry{
		ID:        fmt.Sprintf("%s_%d", i.ID, i.logSeq),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
	logger.Log.WithFields(logrus.Fields{
		"session_id": i.ID,
		"component":  "game_log",
		"log_type":   logType,
	}).Debug(text)
}

// collectGameMessages переносит сообщения партии в журнал инстанса
func (i *Instance) collectGameMessages() {
	for _, m := range i.Game.DrainMessages() {
		i.AddLog(m.Text, m.Type)
	}
}

// takeLogs отдает журнал и очищает его
func (i *Instance) takeLogs() []api.LogEntry {
	logs := i.Logs
	i.Logs = []api.LogEntry{}
	return logs
}
