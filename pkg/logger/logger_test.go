package logger

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type fakeCollection struct {
	mu   sync.Mutex
	docs []LogDocument
}

func (f *fakeCollection) InsertMany(_ context.Context, docs []interface{}, _ ...*options.InsertManyOptions) (*mongo.InsertManyResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range docs {
		f.docs = append(f.docs, d.(LogDocument))
	}
	return &mongo.InsertManyResult{}, nil
}

func (f *fakeCollection) all() []LogDocument {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]LogDocument(nil), f.docs...)
}

func TestWithCtx(t *testing.T) {
	assert.Same(t, L, WithCtx(context.Background()))

	var buf bytes.Buffer
	tagged := slog.New(slog.NewTextHandler(&buf, nil)).With("request_id", "abc")
	ctx := InjectLogger(context.Background(), tagged)
	WithCtx(ctx).Info("hello")

	assert.Contains(t, buf.String(), "request_id=abc")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestMongoHandler_FlushOnClose(t *testing.T) {
	col := &fakeCollection{}
	h := newMongoHandler(col, slog.LevelInfo)
	log := slog.New(h).With("request_id", "rid-1")

	log.Debug("dropped by level")
	log.Info("fallback", "op", "Gateway.FetchProducts", "reason", "status")
	log.WithGroup("http").Warn("slow", "ms", 900)
	h.Close()
	h.Close()

	docs := col.all()
	require.Len(t, docs, 2)

	assert.Equal(t, "fallback", docs[0].Msg)
	assert.Equal(t, "rid-1", docs[0].RequestID)
	assert.Equal(t, "Gateway.FetchProducts", docs[0].Op)
	assert.Equal(t, "status", docs[0].Attrs["reason"])

	assert.Equal(t, "WARN", docs[1].Level)
	assert.EqualValues(t, 900, docs[1].Attrs["http.ms"])
}

func TestMultiHandler_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	m := NewMultiHandler(
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	log := slog.New(m).With("svc", "storefront")

	log.Info("only a")
	log.Warn("both")

	assert.Contains(t, a.String(), "only a")
	assert.Contains(t, a.String(), "both")
	assert.NotContains(t, b.String(), "only a")
	assert.Contains(t, b.String(), "svc=storefront")
}
