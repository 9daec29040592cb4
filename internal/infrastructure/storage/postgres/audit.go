package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	"moneta/internal/core/id"
	"moneta/internal/domain/posting"
	"moneta/pkg/logger"
)

// CompressionAlgo specifies the compression applied to an audit payload.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// auditCompressThreshold is the payload size above which details are
// stored zstd-compressed.
const auditCompressThreshold = 10 * 1024

// AuditRecord is one persisted posting audit row.
type AuditRecord struct {
	ID                id.ID           `db:"id"`
	Kind              string          `db:"kind"`
	SourceType        string          `db:"source_type"`
	SourceID          id.ID           `db:"source_id"`
	JournalID         *id.ID          `db:"journal_id"`
	Details           json.RawMessage `db:"details"`
	DetailsCompressed []byte          `db:"details_compressed"`
	CompressionAlgo   CompressionAlgo `db:"compression_algo"`
	OccurredAt        time.Time       `db:"occurred_at"`
}

// AuditStore persists posting audit events in sys_posting_audit.
// Recording never fails the caller: errors are logged and swallowed,
// an audit miss must not roll a posting back.
type AuditStore struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	logger  *logger.Logger
}

// NewAuditStore creates a posting audit store.
func NewAuditStore(log *logger.Logger) (*AuditStore, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &AuditStore{
		encoder: encoder,
		decoder: decoder,
		logger:  log.WithComponent("posting_audit"),
	}, nil
}

// Record implements posting.AuditSink.
func (s *AuditStore) Record(ctx context.Context, event posting.Event) {
	record := AuditRecord{
		ID:              id.New(),
		Kind:            string(event.Kind),
		SourceType:      event.SourceType,
		SourceID:        event.SourceID,
		JournalID:       event.JournalID,
		CompressionAlgo: CompressionNone,
		OccurredAt:      event.OccurredAt,
	}
	if record.OccurredAt.IsZero() {
		record.OccurredAt = time.Now().UTC()
	}

	if len(event.Details) > 0 {
		details, err := json.Marshal(event.Details)
		if err != nil {
			s.logger.WithContext(ctx).Warnw("audit details marshal failed",
				"kind", event.Kind, "sourceType", event.SourceType,
				"sourceId", event.SourceID, "error", err)
			return
		}
		if len(details) > auditCompressThreshold {
			record.DetailsCompressed = s.encoder.EncodeAll(details, nil)
			record.CompressionAlgo = CompressionZstd
		} else {
			record.Details = details
		}
	}

	sql := `
		INSERT INTO sys_posting_audit (
			id, kind, source_type, source_id, journal_id,
			details, details_compressed, compression_algo, occurred_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	querier := MustGetTxManager(ctx).GetQuerier(ctx)
	_, err := querier.Exec(ctx, sql,
		record.ID, record.Kind, record.SourceType, record.SourceID, record.JournalID,
		record.Details, record.DetailsCompressed, record.CompressionAlgo, record.OccurredAt,
	)
	if err != nil {
		s.logger.WithContext(ctx).Warnw("audit record insert failed",
			"kind", event.Kind, "sourceType", event.SourceType,
			"sourceId", event.SourceID, "error", err)
	}
}

// History retrieves audit records for a source document, newest first.
func (s *AuditStore) History(ctx context.Context, sourceType string, sourceID id.ID, limit int) ([]AuditRecord, error) {
	sql := `
		SELECT id, kind, source_type, source_id, journal_id,
		       details, details_compressed, compression_algo, occurred_at
		FROM sys_posting_audit
		WHERE source_type = $1 AND source_id = $2
		ORDER BY occurred_at DESC
		LIMIT $3
	`

	rows, err := MustGetTxManager(ctx).GetQuerier(ctx).Query(ctx, sql, sourceType, sourceID, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit history: %w", err)
	}
	defer rows.Close()

	var records []AuditRecord
	for rows.Next() {
		var r AuditRecord
		if err := rows.Scan(
			&r.ID, &r.Kind, &r.SourceType, &r.SourceID, &r.JournalID,
			&r.Details, &r.DetailsCompressed, &r.CompressionAlgo, &r.OccurredAt,
		); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}

		if r.CompressionAlgo == CompressionZstd && len(r.DetailsCompressed) > 0 {
			details, err := s.decoder.DecodeAll(r.DetailsCompressed, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress audit details: %w", err)
			}
			r.Details = details
			r.DetailsCompressed = nil
		}

		records = append(records, r)
	}

	return records, rows.Err()
}

var _ posting.AuditSink = (*AuditStore)(nil)
