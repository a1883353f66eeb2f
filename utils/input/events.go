package input

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/unsap/matsim-berlin-homework/event"
	"github.com/unsap/matsim-berlin-homework/utils/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReaderWrapper 包装原始字节流，例如用于显示读取进度
// 参数：r-原始字节流，size-字节流总长度（未知时为-1）
type ReaderWrapper func(r io.Reader, size int64) io.Reader

// EventSource 已打开的事件来源
type EventSource struct {
	event.Stream
	closers []io.Closer
	skipped func() int
}

// Skipped 跳过的其他类型事件数
func (s *EventSource) Skipped() int {
	return s.skipped()
}

func (s *EventSource) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// OpenEvents 打开事件来源
// 功能：根据配置打开JSONL事件文件（.gz结尾时自动解压）或MongoDB事件集合
// 参数：ctx-上下文，client-MongoDB客户端，path-事件来源，wrap-原始字节流包装（可以为nil，只作用于文件）
// 返回：事件来源，使用结束后需要Close
func OpenEvents(ctx context.Context, client *mongo.Client, path config.InputPath, wrap ReaderWrapper) (*EventSource, error) {
	if !path.FromFile() {
		if client == nil {
			return nil, fmt.Errorf("failed to open events %s: no mongo client", path)
		}
		s, err := NewMongoStream(ctx, client.Database(path.GetDb()).Collection(path.GetColl()))
		if err != nil {
			return nil, err
		}
		return &EventSource{Stream: s, closers: []io.Closer{s}, skipped: func() int { return s.Skipped }}, nil
	}

	f, err := os.Open(path.File)
	if err != nil {
		return nil, fmt.Errorf("failed to open events %s: %w", path, err)
	}
	src := &EventSource{closers: []io.Closer{f}}
	var r io.Reader = f
	if wrap != nil {
		size := int64(-1)
		if info, err := f.Stat(); err == nil {
			size = info.Size()
		}
		r = wrap(r, size)
	}
	if strings.HasSuffix(path.File, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to open events %s: %w", path, err)
		}
		src.closers = append(src.closers, gz)
		r = gz
	}
	s := event.NewJSONLStream(r)
	src.Stream = s
	src.skipped = func() int { return s.Skipped }
	log.Infof("reading events from %s", path)
	return src, nil
}

// MongoStream 从MongoDB集合读取事件的事件流
// 功能：按time升序遍历集合中的事件文档
// 说明：其他类型的事件文档被跳过并计数
type MongoStream struct {
	ctx     context.Context
	cursor  *mongo.Cursor
	Skipped int
}

func NewMongoStream(ctx context.Context, coll *mongo.Collection) (*MongoStream, error) {
	// 相同时间的事件保持插入顺序
	opts := options.Find().SetSort(bson.D{{Key: "time", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query events from %s: %w", coll.Name(), err)
	}
	log.Infof("reading events from %s.%s", coll.Database().Name(), coll.Name())
	return &MongoStream{ctx: ctx, cursor: cursor}, nil
}

func (s *MongoStream) Next() (event.Event, error) {
	for s.cursor.Next(s.ctx) {
		var r event.Record
		if err := s.cursor.Decode(&r); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		if !r.IsKnown() {
			s.Skipped++
			continue
		}
		return r.ToEvent()
	}
	if err := s.cursor.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

func (s *MongoStream) Close() error {
	return s.cursor.Close(s.ctx)
}
