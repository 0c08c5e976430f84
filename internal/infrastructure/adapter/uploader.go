package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/bibbank/origination/internal/domain/model"
)

// UploaderConfig bounds the simulated transfer and KYC timings.
type UploaderConfig struct {
	LatencyMin time.Duration
	LatencyMax time.Duration
	KYCDelay   time.Duration
}

// SimulatedUploader stands in for a document vault. Each upload sleeps for a
// random latency in [LatencyMin, LatencyMax]; verification sleeps KYCDelay.
// Every wait returns early with ctx.Err() when the context is done.
type SimulatedUploader struct {
	logger *slog.Logger
	cfg    UploaderConfig
}

func NewSimulatedUploader(cfg UploaderConfig, logger *slog.Logger) *SimulatedUploader {
	if cfg.LatencyMax < cfg.LatencyMin {
		cfg.LatencyMax = cfg.LatencyMin
	}
	return &SimulatedUploader{cfg: cfg, logger: logger}
}

// Upload simulates transferring one file.
func (u *SimulatedUploader) Upload(ctx context.Context, doc model.UploadedDocument) error {
	if doc.FileName == "" {
		return fmt.Errorf("upload %s: file name is required", doc.Key)
	}
	if err := sleep(ctx, u.latency()); err != nil {
		return fmt.Errorf("upload %s: %w", doc.Key, err)
	}
	u.logger.DebugContext(ctx, "document uploaded",
		"document", doc.Key,
		"file_name", doc.FileName,
		"size", doc.Size,
	)
	return nil
}

// Verify simulates KYC processing over an uploaded batch.
func (u *SimulatedUploader) Verify(ctx context.Context, docs []model.UploadedDocument) error {
	if err := sleep(ctx, u.cfg.KYCDelay); err != nil {
		return fmt.Errorf("kyc verification: %w", err)
	}
	u.logger.DebugContext(ctx, "kyc verification complete", "documents", len(docs))
	return nil
}

func (u *SimulatedUploader) latency() time.Duration {
	spread := u.cfg.LatencyMax - u.cfg.LatencyMin
	if spread <= 0 {
		return u.cfg.LatencyMin
	}
	return u.cfg.LatencyMin + time.Duration(rand.Int63n(int64(spread)+1))
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
