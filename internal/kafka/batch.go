package kafka

import (
	"errors"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kbin"
	"github.com/twmb/franz-go/pkg/kgo"
)

// ErrMessageTooLarge is returned by callers when TryAdd rejects a record.
var ErrMessageTooLarge = errors.New("Event is too large for the batch.")

// MessageIDHeader carries a unique id for every published record.
const MessageIDHeader = "message-id"

// recordBatchOverhead is the fixed size of a v2 record batch header.
const recordBatchOverhead = 61

// Batch collects records for one Send, bounded by a byte budget.
type Batch struct {
	topic    string
	maxBytes int32
	size     int32
	records  []*kgo.Record
}

func NewBatch(topic string, maxBytes int32) *Batch {
	return &Batch{
		topic:    topic,
		maxBytes: maxBytes,
		size:     recordBatchOverhead,
	}
}

// NewRecord wraps text in a record stamped with a fresh message id.
func NewRecord(text string) *kgo.Record {
	r := kgo.StringRecord(text)
	r.Headers = append(r.Headers, kgo.RecordHeader{
		Key:   MessageIDHeader,
		Value: []byte(uuid.NewString()),
	})
	return r
}

// TryAdd appends r if it fits within the batch's remaining budget. The batch
// is left untouched when it returns false.
func (b *Batch) TryAdd(r *kgo.Record) bool {
	n := recordSize(r, int32(len(b.records)))
	if int64(b.size)+int64(n) > int64(b.maxBytes) {
		return false
	}
	if r.Topic == "" {
		r.Topic = b.topic
	}
	b.size += n
	b.records = append(b.records, r)
	return true
}

func (b *Batch) Len() int { return len(b.records) }

// SizeBytes is the estimated encoded size of the batch.
func (b *Batch) SizeBytes() int32 { return b.size }

func (b *Batch) Records() []*kgo.Record { return b.records }

// recordSize estimates the v2 encoding of r at position offsetDelta. The
// timestamp delta is counted at its worst case for all but the first record.
func recordSize(r *kgo.Record, offsetDelta int32) int32 {
	tsDelta := 1
	if offsetDelta > 0 {
		tsDelta = 10
	}
	body := 1 + tsDelta + kbin.VarintLen(offsetDelta)
	body += bytesLen(r.Key) + bytesLen(r.Value)
	body += kbin.VarintLen(int32(len(r.Headers)))
	for _, h := range r.Headers {
		body += kbin.VarintLen(int32(len(h.Key))) + len(h.Key) + bytesLen(h.Value)
	}
	return int32(kbin.VarintLen(int32(body)) + body)
}

func bytesLen(b []byte) int {
	if b == nil {
		return kbin.VarintLen(-1)
	}
	return kbin.VarintLen(int32(len(b))) + len(b)
}
