package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"net/url"
	"strconv"

	"github.com/fhuszti/lsl-go/internal/port"
)

type httpRenderer struct {
	cache port.Cache
}

// compile-time check: *httpRenderer must satisfy port.HTTPRenderer
var _ port.HTTPRenderer = (*httpRenderer)(nil)

// NewHTTPRenderer creates a new HTTPRenderer implementation.
func NewHTTPRenderer(cache port.Cache) port.HTTPRenderer {
	return &httpRenderer{cache: cache}
}

// RenderListAssets fetches an asset listing either from cache or from the wrapped
// use case. It returns the JSON encoded output and a quoted ETag string.
func (r *httpRenderer) RenderListAssets(ctx context.Context, lister port.AssetLister, in port.ListAssetsInput) ([]byte, string, error) {
	key := listKey(in)
	raw, err := r.cache.GetAssetList(ctx, key)
	etag, errEtag := r.cache.GetEtagAssetList(ctx, key)
	if err == nil && errEtag == nil && raw != nil && etag != "" {
		return raw, etag, nil
	}

	out, err := lister.ListAssets(ctx, in)
	if err != nil {
		return nil, "", err
	}

	raw, err = json.Marshal(out)
	if err != nil {
		return nil, "", fmt.Errorf("json marshal: %w", err)
	}

	etag = fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(raw))
	r.cache.SetAssetList(ctx, key, raw, out.ValidUntil)
	r.cache.SetEtagAssetList(ctx, key, etag, out.ValidUntil)

	return raw, etag, nil
}

func listKey(in port.ListAssetsInput) string {
	v := url.Values{}
	v.Set("limit", strconv.Itoa(in.Limit))
	if in.Category != "" {
		v.Set("category", in.Category)
	}
	if in.EntityID != "" {
		v.Set("entity_id", in.EntityID)
	}
	return v.Encode()
}
