package logger

import (
	log "log/slog"
	"os"

	"github.com/google/uuid"
)

// InitLogger 初始化全局 slog，附带本次运行的 run_id
func InitLogger() {
	hStdout := log.NewJSONHandler(os.Stdout, &log.HandlerOptions{Level: log.LevelInfo})

	handler := hStdout.WithAttrs([]log.Attr{
		log.String("run_id", uuid.NewString()),
	})

	logger := log.New(&ContextHandler{handler})
	log.SetDefault(logger)
}
