package session

import (
	"context"

	"github.com/xnaught/PresentMon-sub004/pkg/blob"
)

// CachingQuery polls a DynamicQuery at most once per timestamp. Callers
// that render several views of the same tick share one provider call.
type CachingQuery struct {
	query  *DynamicQuery
	blobs  *blob.Container
	last   int64
	cached bool
}

func NewCachingQuery(q *DynamicQuery) *CachingQuery {
	return &CachingQuery{query: q, blobs: q.MakeBlobContainer(1)}
}

// Poll returns the blob for timestamp t, polling only when t differs from
// the timestamp of the cached blob. A failed poll leaves the cache empty.
// A poll that succeeds without data is cached like any other and reported
// as blob.ErrNotPopulated.
func (c *CachingQuery) Poll(ctx context.Context, tracker *ProcessTracker, t int64) (blob.Buffer, error) {
	if c.cached && c.last == t {
		return c.Blob()
	}
	c.cached = false
	if err := c.query.Poll(ctx, tracker, c.blobs); err != nil {
		return blob.Buffer{}, err
	}
	c.last = t
	c.cached = true
	return c.Blob()
}

// Blob returns the most recently polled blob, or blob.ErrNotPopulated when
// that poll produced no data.
func (c *CachingQuery) Blob() (blob.Buffer, error) {
	return c.blobs.PopulatedBlob(0)
}

// Populated reports whether the last poll produced data. A process with no
// active swap chain polls successfully with nothing populated.
func (c *CachingQuery) Populated() bool { return c.blobs.Populated() > 0 }

func (c *CachingQuery) Query() *DynamicQuery { return c.query }

// Reset frees the underlying query and drops the cache.
func (c *CachingQuery) Reset(ctx context.Context) error {
	c.cached = false
	c.last = 0
	c.blobs.Reset()
	return c.query.Reset(ctx)
}
