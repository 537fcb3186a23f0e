package upload

import (
	"strings"
	"time"

	"github.com/fhuszti/lsl-go/internal/history"
)

// DeriveIDs names the task and summary of an upload after the object key's
// file name without its extensions. It is the only link between an upload and
// its later views, so it must stay pure.
func DeriveIDs(objectKey string) (taskID, summaryID string) {
	segment := objectKey[strings.LastIndex(objectKey, "/")+1:]
	base, _, _ := strings.Cut(segment, ".")
	return "task_" + base, "summary_" + base
}

// uploadedAtLayout matches the millisecond UTC form browsers produce.
const uploadedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// NewRecord combines what the backend confirmed with what is known locally
// about the file.
func NewRecord(res *Result, file File, durationSec *float64, now time.Time) history.Record {
	taskID, summaryID := DeriveIDs(res.Completion.ObjectKey)
	return history.Record{
		TaskID:      taskID,
		SummaryID:   summaryID,
		FileName:    file.Name,
		FileSize:    file.Size,
		DurationSec: durationSec,
		ObjectKey:   res.Completion.ObjectKey,
		AssetURL:    res.Completion.AssetURL,
		UploadedAt:  now.UTC().Format(uploadedAtLayout),
	}
}
