package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
	"github.com/PnBafon/viten-backend/internal/core/tx"
	"github.com/PnBafon/viten-backend/pkg/logger"
)

// zstd frame magic, little-endian on the wire.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// Service exports and restores ledger snapshots.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new backup service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// Export serializes the full ledger to zstd-compressed JSON.
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	snap, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	snap.Version = SnapshotVersion
	snap.CreatedAt = time.Now().UTC()

	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}

	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, fmt.Errorf("create zstd writer: %w", err)
	}
	if _, err := enc.Write(raw); err != nil {
		enc.Close()
		return nil, fmt.Errorf("compress snapshot: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("finish zstd stream: %w", err)
	}

	logger.Info(ctx, "ledger exported",
		"rawBytes", len(raw),
		"compressedBytes", buf.Len(),
	)
	return buf.Bytes(), nil
}

// Restore replaces the whole ledger with the uploaded snapshot. Compressed
// uploads are detected by the zstd magic bytes; plain JSON is accepted too.
// The wipe and the reload share one transaction, so a bad snapshot leaves
// the ledger untouched.
func (s *Service) Restore(ctx context.Context, data []byte) error {
	raw, err := decode(data)
	if err != nil {
		return err
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return apperror.NewValidation("snapshot is not valid JSON").WithCause(err)
	}
	if snap.Version != SnapshotVersion {
		return apperror.NewValidation("unsupported snapshot version").
			WithDetail("version", snap.Version).
			WithDetail("supported", SnapshotVersion)
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.ReplaceAll(ctx, &snap)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "ledger restored",
		"purchases", len(snap.Purchases),
		"incomes", len(snap.Incomes),
		"debts", len(snap.Debts),
		"repayments", len(snap.Repayments),
		"expenses", len(snap.Expenses),
	)
	return nil
}

func decode(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, apperror.NewValidation("snapshot is empty")
	}
	if !bytes.HasPrefix(data, zstdMagic) {
		return data, nil
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd reader: %w", err)
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, apperror.NewValidation("snapshot is not a valid zstd stream").WithCause(err)
	}
	return raw, nil
}
