// Package history keeps the local record of past uploads: at most MaxRecords
// entries, one per task id, most recent first. Every backing persists the whole
// list as a single JSON array so the slot can be inspected or copied by hand.
package history

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"slices"
	"time"

	"github.com/fhuszti/lsl-go/internal/logger"
)

const (
	MaxRecords = 20
	SlotName   = "lsl.upload.history.v1"
)

var ErrNotFound = errors.New("upload record not found")

// Record is an upload the backend confirmed. It is never mutated after Save.
type Record struct {
	TaskID      string   `json:"taskId"`
	SummaryID   string   `json:"summaryId"`
	FileName    string   `json:"fileName"`
	FileSize    int64    `json:"fileSize"`
	DurationSec *float64 `json:"durationSec"`
	ObjectKey   string   `json:"objectKey"`
	AssetURL    string   `json:"assetUrl"`
	UploadedAt  string   `json:"uploadedAt"`
}

type Store interface {
	// List returns the records sorted by UploadedAt descending. A missing or
	// malformed slot reads as an empty list.
	List(ctx context.Context) ([]Record, error)
	// Save replaces any record with the same task id and puts rec first.
	Save(ctx context.Context, rec Record) error
	FindByTaskID(ctx context.Context, taskID string) (Record, error)
	FindBySummaryID(ctx context.Context, summaryID string) (Record, error)
	Clear(ctx context.Context) error
}

// slot is the raw storage behind a Store.
type slot interface {
	load(ctx context.Context) ([]byte, error)
	// modify runs fn over the current content under exclusive access and
	// persists its result; a nil result empties the slot.
	modify(ctx context.Context, fn func(raw []byte) ([]byte, error)) error
}

type slotStore struct {
	slot slot
}

func (s slotStore) List(ctx context.Context) ([]Record, error) {
	raw, err := s.slot.load(ctx)
	if err != nil {
		return nil, err
	}
	return decode(ctx, raw), nil
}

func (s slotStore) Save(ctx context.Context, rec Record) error {
	return s.slot.modify(ctx, func(raw []byte) ([]byte, error) {
		return json.Marshal(apply(decode(ctx, raw), rec))
	})
}

func (s slotStore) FindByTaskID(ctx context.Context, taskID string) (Record, error) {
	return s.find(ctx, func(r Record) bool { return r.TaskID == taskID })
}

func (s slotStore) FindBySummaryID(ctx context.Context, summaryID string) (Record, error) {
	return s.find(ctx, func(r Record) bool { return r.SummaryID == summaryID })
}

func (s slotStore) Clear(ctx context.Context) error {
	return s.slot.modify(ctx, func([]byte) ([]byte, error) { return nil, nil })
}

func (s slotStore) find(ctx context.Context, match func(Record) bool) (Record, error) {
	recs, err := s.List(ctx)
	if err != nil {
		return Record{}, err
	}
	if i := slices.IndexFunc(recs, match); i >= 0 {
		return recs[i], nil
	}
	return Record{}, ErrNotFound
}

// apply drops any entry sharing rec's task id, prepends rec and keeps the newest MaxRecords.
func apply(current []Record, rec Record) []Record {
	next := make([]Record, 0, len(current)+1)
	next = append(next, rec)
	for _, r := range current {
		if r.TaskID != rec.TaskID {
			next = append(next, r)
		}
	}
	if len(next) > MaxRecords {
		next = next[:MaxRecords]
	}
	return next
}

func decode(ctx context.Context, raw []byte) []Record {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []Record{}
	}
	var recs []Record
	if err := json.Unmarshal(raw, &recs); err != nil {
		logger.Warnf(ctx, "⚠️  Malformed upload history, reading it as empty: %v", err)
		return []Record{}
	}
	if recs == nil {
		return []Record{}
	}
	sortByUploadedAt(recs)
	if len(recs) > MaxRecords {
		recs = recs[:MaxRecords]
	}
	return recs
}

// sortByUploadedAt orders newest first; timestamps that do not parse sort last.
func sortByUploadedAt(recs []Record) {
	slices.SortStableFunc(recs, func(a, b Record) int {
		return uploadedAt(b).Compare(uploadedAt(a))
	})
}

func uploadedAt(r Record) time.Time {
	t, err := time.Parse(time.RFC3339Nano, r.UploadedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
