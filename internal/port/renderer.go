package port

import "context"

// HTTPRenderer mediates between HTTP handlers and the asset lister use case.
// It provides caching capabilities and returns both the JSON representation of
// the result as well as an ETag value derived from it.
type HTTPRenderer interface {
	// RenderListAssets returns the cached JSON result and its ETag if available or
	// executes the underlying use case and caches the output otherwise.
	RenderListAssets(ctx context.Context, lister AssetLister, in ListAssetsInput) ([]byte, string, error)
}
