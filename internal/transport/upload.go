package transport

import (
	"context"
	"io"
	"math"
	"net/http"
	"strings"
	"sync"
)

// ProgressFunc receives whole percentages in [0,100], never decreasing and never repeated.
type ProgressFunc func(percent int)

type UploadResult struct {
	// ETag is the storage content identifier with quote characters removed; it may be empty.
	ETag string
}

// UploadBinary PUTs the whole body to a presigned URL in one request. Progress
// is only reported when size is positive, and never after a failure.
func (c *Client) UploadBinary(ctx context.Context, url string, body io.Reader, size int64, contentType string, onProgress ProgressFunc) (UploadResult, error) {
	var tracker *progressReader
	reqBody := body
	if body == nil || size == 0 {
		reqBody = http.NoBody
	} else if onProgress != nil && size > 0 {
		tracker = &progressReader{r: body, total: size, report: onProgress, last: -1}
		reqBody = tracker
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, reqBody)
	if err != nil {
		return UploadResult{}, &UploadTransportError{Err: err}
	}
	if size > 0 {
		req.ContentLength = size
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		tracker.stop()
		return UploadResult{}, &UploadTransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		tracker.stop()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return UploadResult{}, &UploadTransportError{Status: resp.StatusCode, Body: string(raw)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	tracker.finish()
	return UploadResult{ETag: strings.ReplaceAll(resp.Header.Get("ETag"), `"`, "")}, nil
}

// progressReader converts bytes handed to the transport into percentages.
// The transport may read from its own goroutine, hence the lock.
type progressReader struct {
	r      io.Reader
	total  int64
	report ProgressFunc

	mu      sync.Mutex
	read    int64
	last    int
	stopped bool
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.mu.Lock()
		p.read += int64(n)
		p.emit(int(math.Round(float64(p.read) / float64(p.total) * 100)))
		p.mu.Unlock()
	}
	return n, err
}

// emit must be called with mu held.
func (p *progressReader) emit(pct int) {
	if p.stopped {
		return
	}
	pct = min(max(pct, 0), 100)
	if pct <= p.last {
		return
	}
	p.last = pct
	p.report(pct)
}

func (p *progressReader) stop() {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()
}

func (p *progressReader) finish() {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.emit(100)
	p.stopped = true
	p.mu.Unlock()
}
