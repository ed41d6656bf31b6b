package events

import (
	"github.com/nestera-labs/nestera"
	"github.com/tendermint/tendermint/libs/log"
)

// LogSink writes every event to the logger at info level. When no logger
// is given, the context logger is used.
type LogSink struct {
	Logger log.Logger
}

var _ Sink = LogSink{}

func (s LogSink) Publish(ctx nestera.Context, e Event) {
	logger := s.Logger
	if logger == nil {
		logger = nestera.GetLogger(ctx)
	}
	keyvals := []interface{}{"kind", e.Kind, "principal", e.Principal, "id", e.ID}
	for _, p := range e.Payload {
		keyvals = append(keyvals, string(p.Key), p.Value)
	}
	logger.Info("event", keyvals...)
}
