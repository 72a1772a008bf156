package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks writes HTTP and pipeline events to the debug log.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnRequest(_ context.Context, method, host, path, requestID string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path, "request_id", requestID)
}

func (h *logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path,
		"status", status, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

func (h *logHooks) OnFetchStart(_ context.Context, project string) {
	h.logger.Debug("fetch started", "project", project)
}

func (h *logHooks) OnFetchComplete(_ context.Context, project string, rows int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("fetch failed", "project", project, "err", err)
		return
	}
	h.logger.Debug("fetch complete", "project", project, "rows", rows, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnStage(_ context.Context, stage string, rowsIn, rowsOut int) {
	h.logger.Debug("stage", "name", stage, "in", rowsIn, "out", rowsOut)
}
