package engine

import (
	"os"
	"testing"

	"wisp-server/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}
