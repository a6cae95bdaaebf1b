package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"

	"github.com/tuanmtrinh/streamrip-gui/internal/config"
	"github.com/tuanmtrinh/streamrip-gui/internal/model"
)

// Output filename template handed to yt-dlp
const outputTemplate = "%(title)s.%(ext)s"

// YTDLP implements Engine on top of the yt-dlp binary. The config manager is
// the opaque session handle: the adapter reads the output folder from it at
// download time and never caches it across jobs.
type YTDLP struct {
	cfg    *config.Manager
	logger *zap.Logger
}

// NewYTDLP creates a yt-dlp backed engine
func NewYTDLP(cfg *config.Manager, logger *zap.Logger) *YTDLP {
	return &YTDLP{cfg: cfg, logger: logger}
}

// Resolve probes each URL for media metadata without downloading anything
func (e *YTDLP) Resolve(ctx context.Context, urls []string) ([]model.ResolvedItem, error) {
	items := make([]model.ResolvedItem, 0, len(urls))
	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dl := ytdlp.New().SkipDownload()
		result, err := dl.Run(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("resolve %s: %w", url, err)
		}

		item := model.ResolvedItem{SourceURL: url, Title: url}
		info, err := result.GetExtractedInfo()
		if err != nil {
			e.logger.Warn("no extracted info", zap.String("url", url), zap.Error(err))
		} else if len(info) > 0 {
			first := info[0]
			if first.Title != nil && *first.Title != "" {
				item.Title = *first.Title
			}
			if first.Uploader != nil && *first.Uploader != "" {
				item.Artist = *first.Uploader
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// Download fetches every item into the configured output folder. Items are
// downloaded sequentially; ctx is checked between items so a cancel takes
// effect at the next boundary.
func (e *YTDLP) Download(ctx context.Context, items []model.ResolvedItem, onItemDone func(index int, err error)) error {
	outputDir := e.cfg.OutputFolder()

	dl := ytdlp.New().
		ForceOverwrites().
		RestrictFilenames().
		Output(filepath.Join(outputDir, outputTemplate))

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}

		_, err := dl.Run(ctx, item.SourceURL)
		if err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			e.logger.Warn("item download failed",
				zap.String("url", item.SourceURL),
				zap.Error(err))
		}
		if onItemDone != nil {
			onItemDone(i, err)
		}
	}
	return nil
}
