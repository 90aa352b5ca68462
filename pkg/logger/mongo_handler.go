package logger

// MongoHandler ships log records to a MongoDB collection in the background.
//
//   - Handle enqueues into a buffered channel and never blocks; when the
//     channel is full the record is dropped.
//   - One goroutine drains the channel with InsertMany in batches.
//   - Close flushes what is queued and disconnects.

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoQueueSize = 4096
	mongoBatchSize = 50
	mongoDrainTick = 2 * time.Second
)

// LogDocument is the shape written to MongoDB.
type LogDocument struct {
	Time      time.Time `bson:"time"`
	Level     string    `bson:"level"`
	Msg       string    `bson:"msg"`
	RequestID string    `bson:"request_id,omitempty"`
	Op        string    `bson:"op,omitempty"`
	Attrs     bson.M    `bson:"attrs,omitempty"`
}

// inserter is the part of *mongo.Collection the drain loop needs.
type inserter interface {
	InsertMany(ctx context.Context, docs []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
}

// sink is shared by a MongoHandler and every handler derived from it.
type sink struct {
	col       inserter
	client    *mongo.Client
	queue     chan LogDocument
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// MongoHandler is a slog.Handler that writes to MongoDB asynchronously.
type MongoHandler struct {
	sink   *sink
	level  slog.Leveler
	attrs  []slog.Attr
	prefix string
}

// NewMongoHandler connects to uri and writes into db/collection.
// The caller must eventually call Close.
func NewMongoHandler(ctx context.Context, uri, db, collection string, level slog.Leveler) (*MongoHandler, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("logger: mongo connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("logger: mongo ping: %w", err)
	}

	col := client.Database(db).Collection(collection)

	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "time", Value: -1}},
	})

	h := newMongoHandler(col, level)
	h.sink.client = client
	return h, nil
}

func newMongoHandler(col inserter, level slog.Leveler) *MongoHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	s := &sink{
		col:     col,
		queue:   make(chan LogDocument, mongoQueueSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.drainLoop()
	return &MongoHandler{sink: s, level: level}
}

// ─── slog.Handler interface ───────────────────────────────────────────────────

func (h *MongoHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *MongoHandler) Handle(_ context.Context, r slog.Record) error {
	doc := LogDocument{
		Time:  r.Time,
		Level: r.Level.String(),
		Msg:   r.Message,
		Attrs: bson.M{},
	}

	add := func(a slog.Attr) {
		switch a.Key {
		case "request_id":
			doc.RequestID = a.Value.String()
		case "op":
			doc.Op = a.Value.String()
		default:
			doc.Attrs[h.prefix+a.Key] = a.Value.Resolve().Any()
		}
	}
	for _, a := range h.attrs {
		add(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		add(a)
		return true
	})
	if len(doc.Attrs) == 0 {
		doc.Attrs = nil
	}

	select {
	case h.sink.queue <- doc:
	default:
	}
	return nil
}

func (h *MongoHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	prefixed := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	prefixed = append(prefixed, h.attrs...)
	for _, a := range attrs {
		if h.prefix != "" && a.Key != "request_id" && a.Key != "op" {
			a.Key = h.prefix + a.Key
		}
		prefixed = append(prefixed, a)
	}
	return &MongoHandler{sink: h.sink, level: h.level, attrs: prefixed, prefix: h.prefix}
}

func (h *MongoHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &MongoHandler{sink: h.sink, level: h.level, attrs: h.attrs, prefix: h.prefix + name + "."}
}

// ─── Internals ────────────────────────────────────────────────────────────────

func (s *sink) drainLoop() {
	defer close(s.stopped)

	ticker := time.NewTicker(mongoDrainTick)
	defer ticker.Stop()

	batch := make([]interface{}, 0, mongoBatchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, _ = s.col.InsertMany(ctx, batch)
		batch = batch[:0]
	}

	for {
		select {
		case doc := <-s.queue:
			batch = append(batch, doc)
			if len(batch) >= mongoBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.done:
			for {
				select {
				case doc := <-s.queue:
					batch = append(batch, doc)
					if len(batch) >= mongoBatchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

// Close flushes pending records and disconnects. Safe to call repeatedly.
func (h *MongoHandler) Close() {
	h.sink.closeOnce.Do(func() {
		close(h.sink.done)
		<-h.sink.stopped
		if h.sink.client != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = h.sink.client.Disconnect(ctx)
		}
	})
}

// ─── Multi-handler fan-out ─────────────────────────────────────────────────────

// MultiHandler fans out to multiple slog.Handlers.
type MultiHandler struct {
	handlers []slog.Handler
}

// NewMultiHandler returns a handler that sends each record to all hs.
func NewMultiHandler(hs ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: hs}
}

func (m *MultiHandler) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (m *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []string
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err.Error())
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("logger: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	hs := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		hs[i] = h.WithAttrs(attrs)
	}
	return &MultiHandler{handlers: hs}
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	hs := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		hs[i] = h.WithGroup(name)
	}
	return &MultiHandler{handlers: hs}
}

// AttachMongo adds a MongoDB sink next to the base handler. The returned
// func flushes and disconnects it.
func AttachMongo(ctx context.Context, uri, db, collection string) (func(), error) {
	mh, err := NewMongoHandler(ctx, uri, db, collection, level())
	if err != nil {
		return func() {}, err
	}
	Use(slog.New(NewMultiHandler(L.Handler(), mh)))
	return mh.Close, nil
}
