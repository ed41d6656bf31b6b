package events

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/weavetest"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

func TestFanout(t *testing.T) {
	ctx := context.Background()
	var a, b Recorder
	sink := Fanout(&a, Discard, &b)

	who := weavetest.NewCondition().Address()
	sink.Publish(ctx, Event{Kind: "proposal", Principal: who, ID: 1})
	sink.Publish(ctx, Event{Kind: "vote", Principal: who, ID: 1, Payload: nil})

	require.Len(t, a.Events(), 2)
	assert.Equal(t, a.Events(), b.Events())
	assert.Equal(t, "vote", b.Events()[1].Kind)

	drained := a.Drain()
	assert.Len(t, drained, 2)
	assert.Empty(t, a.Events())
}

func TestMetricsSink(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink := NewMetricsSink(reg)
	ctx := context.Background()

	sink.Publish(ctx, Event{Kind: "vote"})
	sink.Publish(ctx, Event{Kind: "vote"})
	sink.Publish(ctx, Event{Kind: "proposal"})

	assert.Equal(t, float64(2), testutil.ToFloat64(sink.Counter("vote")))
	assert.Equal(t, float64(1), testutil.ToFloat64(sink.Counter("proposal")))

	assert.Panics(t, func() { NewMetricsSink(reg) })
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	sink := LogSink{Logger: log.NewTMLogger(log.NewSyncWriter(&buf))}

	who := weavetest.NewCondition().Address()
	sink.Publish(context.Background(), Event{
		Kind:      "vote",
		Principal: who,
		ID:        7,
		Payload:   nil,
	})
	out := buf.String()
	assert.True(t, strings.Contains(out, "kind=vote"), out)
	assert.True(t, strings.Contains(out, "id=7"), out)
}

func TestLogSinkUsesContextLogger(t *testing.T) {
	var buf bytes.Buffer
	ctx := nestera.WithLogger(context.Background(), log.NewTMLogger(log.NewSyncWriter(&buf)))
	LogSink{}.Publish(ctx, Event{Kind: "proposal", ID: 3})
	assert.True(t, strings.Contains(buf.String(), "kind=proposal"), buf.String())
}

func TestEventTags(t *testing.T) {
	who := weavetest.NewCondition().Address()
	e := Event{
		Kind:      "vote",
		Principal: who,
		ID:        2,
		Payload:   []common.KVPair{Pair("support", []byte("true"))},
	}
	tags := e.Tags()
	require.Len(t, tags, 3)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 2}, tags[0].Value)
	assert.Equal(t, "vote.principal", string(tags[1].Key))
	assert.Equal(t, who.String(), string(tags[1].Value))
	assert.Equal(t, "vote.support", string(tags[2].Key))
}
