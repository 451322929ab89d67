package extractor

import (
	"context"
	"io"

	"github.com/imbecility/tubesave/pkg/models"
)

// Extractor is the boundary to whatever actually talks to the video
// platform. Implementations must honour ctx on both calls, and closing the
// returned stream must release the underlying connection.
type Extractor interface {
	Name() string
	FetchMetadata(ctx context.Context, videoURL string) (*models.Metadata, error)
	OpenStream(ctx context.Context, meta *models.Metadata, format models.SourceFormat) (io.ReadCloser, int64, error)
}
