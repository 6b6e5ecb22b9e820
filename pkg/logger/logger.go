package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
// До вызова Init работает с настройками logrus по умолчанию, чтобы пакеты
// ядра можно было использовать из тестов и утилит без явной инициализации.
var Log = logrus.New()

// Init инициализирует глобальный логгер из переменных окружения.
// Вызывается один раз при старте приложения в main.go (и в TestMain).
func Init() {
	InitWithOutput(os.Stdout)
}

// InitWithOutput то же, что Init, но пишет в произвольный writer.
// Терминальный клиент уводит логи в файл, чтобы не портить экран.
func InitWithOutput(out io.Writer) {
	Log = logrus.New()

	// 1. Уровень логирования. По умолчанию - "info", для отладки ядра - "debug".
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// 2. Форматтер: "json" для сбора логов, текст для разработки.
	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if logFormat == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   out == os.Stdout,
		})
	}

	Log.SetOutput(out)
}

// For возвращает запись с полем component - так проще фильтровать логи подсистем.
func For(component string) *logrus.Entry {
	return Log.WithField("component", component)
}
