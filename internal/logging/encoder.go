package logging

import (
	"fmt"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// tagKey is the zap field name carrying the origin tag for a log line:
// a process name for child-origin output, or "SYSTEM" for supervisor-origin
// lines. See the line-format contract in janus.toml's consuming spec.
const tagKey = "tag"

var bufferPool = buffer.NewPool()

// lineEncoder renders every entry as:
//
//	[YYYY-MM-DD HH:MM:SS.mmm] [<tag>] <content>
//
// It embeds zapcore.MapObjectEncoder to satisfy zapcore.ObjectEncoder for
// free and only implements the two methods the contract actually cares
// about: Clone and EncodeEntry.
type lineEncoder struct {
	*zapcore.MapObjectEncoder
}

func newLineEncoder() zapcore.Encoder {
	return &lineEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder()}
}

func (e *lineEncoder) Clone() zapcore.Encoder {
	clone := zapcore.NewMapObjectEncoder()
	for k, v := range e.MapObjectEncoder.Fields {
		clone.Fields[k] = v
	}
	return &lineEncoder{MapObjectEncoder: clone}
}

func (e *lineEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	clone := e.Clone().(*lineEncoder)
	for _, f := range fields {
		f.AddTo(clone.MapObjectEncoder)
	}

	tag, _ := clone.Fields[tagKey].(string)
	if tag == "" {
		tag = "SYSTEM"
	}

	buf := bufferPool.Get()
	fmt.Fprintf(buf, "[%s] [%s] %s\n", ent.Time.Format("2006-01-02 15:04:05.000"), tag, ent.Message)
	return buf, nil
}
