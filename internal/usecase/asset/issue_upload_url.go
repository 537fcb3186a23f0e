package asset

import (
	"context"
	"time"

	"github.com/fhuszti/lsl-go/internal/logger"
	"github.com/fhuszti/lsl-go/internal/port"
)

type uploadURLIssuerSrv struct {
	strg         port.Storage
	assetBaseURL string
	ttl          time.Duration
	genUUID      port.UUIDGen
}

// compile-time check: *uploadURLIssuerSrv must satisfy port.UploadURLIssuer
var _ port.UploadURLIssuer = (*uploadURLIssuerSrv)(nil)

// NewUploadURLIssuer constructs an UploadURLIssuer. A zero ttl means DefaultUploadURLTTL.
func NewUploadURLIssuer(strg port.Storage, assetBaseURL string, ttl time.Duration, genUUID port.UUIDGen) port.UploadURLIssuer {
	if ttl <= 0 {
		ttl = DefaultUploadURLTTL
	}
	return &uploadURLIssuerSrv{strg: strg, assetBaseURL: assetBaseURL, ttl: ttl, genUUID: genUUID}
}

func (s *uploadURLIssuerSrv) IssueUploadURL(ctx context.Context, in port.IssueUploadURLInput) (port.IssueUploadURLOutput, error) {
	key := NewObjectKey(in.Category, in.EntityID, s.genUUID(), in.Filename)
	logger.Infof(ctx, "issuing upload url for %q (%s)...", key, in.ContentType)

	url, err := s.strg.GeneratePresignedUploadURL(ctx, key, in.ContentType, s.ttl)
	if err != nil {
		return port.IssueUploadURLOutput{}, err
	}

	return port.IssueUploadURLOutput{
		ObjectKey: key,
		UploadURL: url,
		AssetURL:  AssetURL(s.assetBaseURL, key),
	}, nil
}
