// File path: internal/common/telemetry/telemetry.go
package telemetry

import (
	"context"
	"expvar"
	"strings"
	"sync"
	"time"

	"github.com/adityakulkarni/reportforge/internal/common"
)

type spanKey struct{}

type span struct {
	name  string
	start time.Time
}

var (
	initOnce sync.Once

	stageTotal     *expvar.Map
	stageLatencyMS *expvar.Map

	extractTotal *expvar.Map
	extractChars *expvar.Int

	documentsTotal *expvar.Int
	documentBytes  *expvar.Int
)

func ensureInit() {
	initOnce.Do(func() {
		stageTotal = expvar.NewMap("reportforge_stage_total")
		stageLatencyMS = expvar.NewMap("reportforge_stage_latency_ms")

		extractTotal = expvar.NewMap("reportforge_extract_total")
		extractChars = expvar.NewInt("reportforge_extract_chars_total")

		documentsTotal = expvar.NewInt("reportforge_documents_total")
		documentBytes = expvar.NewInt("reportforge_document_bytes_total")
	})
}

// StartSpan tags the context with a named timing span. The returned finish
// function logs the duration together with any extra attributes.
func StartSpan(ctx context.Context, name string) (context.Context, func(attrs ...interface{})) {
	ensureInit()
	sp := &span{name: name, start: time.Now()}
	ctx = context.WithValue(ctx, spanKey{}, sp)
	logger := common.Logger()
	logger.Debug("trace: start", "span", name)
	return ctx, func(attrs ...interface{}) {
		if sp == nil {
			return
		}
		duration := time.Since(sp.start)
		logger.Debug("trace: end", append([]interface{}{"span", name, "dur", duration}, attrs...)...)
	}
}

// RecordStage counts one pipeline stage execution and its latency.
func RecordStage(stage string, duration time.Duration) {
	ensureInit()
	key := strings.TrimSpace(strings.ToLower(stage))
	if key == "" {
		key = "unknown"
	}
	stageTotal.Add(key, 1)
	if duration > 0 {
		stageLatencyMS.Add(key, duration.Milliseconds())
	}
}

// RecordExtraction counts one reference-document extraction per MIME type.
func RecordExtraction(mime string, chars int) {
	ensureInit()
	key := strings.TrimSpace(strings.ToLower(mime))
	if key == "" {
		key = "unknown"
	}
	extractTotal.Add(key, 1)
	if chars > 0 {
		extractChars.Add(int64(chars))
	}
}

// RecordDocumentBuilt counts one assembled report document.
func RecordDocumentBuilt(size int) {
	ensureInit()
	documentsTotal.Add(1)
	if size > 0 {
		documentBytes.Add(int64(size))
	}
}

// SpanDuration returns the elapsed time of the span carried by the context,
// or zero when none is present.
func SpanDuration(ctx context.Context) time.Duration {
	sp, ok := ctx.Value(spanKey{}).(*span)
	if !ok || sp == nil {
		return 0
	}
	return time.Since(sp.start)
}
