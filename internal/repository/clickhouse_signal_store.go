package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"DexPulse/internal/domain/models"
	domrepo "DexPulse/internal/domain/repository"
	applogger "DexPulse/pkg/logger"
)

// CHSignalStore keeps the signal history in a ClickHouse MergeTree table.
type CHSignalStore struct {
	db       *sql.DB
	database string
	table    string
	l        *applogger.Logger
}

// NewCHSignalStore stores signal records in database.table.
func NewCHSignalStore(db *sql.DB, database, table string, l *applogger.Logger) domrepo.SignalHistory {
	if l == nil {
		l = applogger.Nop()
	}
	return &CHSignalStore{db: db, database: database, table: table, l: l}
}

func (s *CHSignalStore) qualified() string {
	return fmt.Sprintf("%s.%s", s.database, s.table)
}

func signalSchema(database, table string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database),
		fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s.%s (
            created_at        DateTime64(3, 'UTC'),
            chain_id          LowCardinality(String),
            token_address     String,
            pair_address      String,
            venue_id          LowCardinality(String),
            signal            LowCardinality(String),
            confidence        UInt8,
            total_score       Float64,
            reference_price   String,
            target_percent    Float64,
            stop_loss_percent Float64,
            generation        UInt64
        )
        ENGINE = MergeTree
        ORDER BY (chain_id, token_address, created_at)
    `, database, table),
	}
}

// Init creates the history table if it does not exist.
func (s *CHSignalStore) Init(ctx context.Context) error {
	for _, stmt := range signalSchema(s.database, s.table) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init signal history: %w", err)
		}
	}
	return nil
}

// Append inserts one committed signal record.
func (s *CHSignalStore) Append(ctx context.Context, rec models.SignalRecord) error {
	q := fmt.Sprintf(`INSERT INTO %s (created_at, chain_id, token_address, pair_address, venue_id, signal,
        confidence, total_score, reference_price, target_percent, stop_loss_percent, generation)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.qualified())
	_, err := s.db.ExecContext(ctx, q,
		rec.CreatedAt,
		rec.ChainID,
		rec.TokenAddress,
		rec.PairAddress,
		rec.VenueID,
		string(rec.Signal),
		uint8(rec.Confidence),
		rec.TotalScore,
		rec.ReferencePrice,
		rec.TargetPercent,
		rec.StopLossPercent,
		rec.Generation,
	)
	if err != nil {
		s.l.Error("clickhouse append_signal error",
			applogger.String("token", rec.TokenAddress),
			applogger.Error(err),
		)
		return fmt.Errorf("append signal: %w", err)
	}
	return nil
}

// Recent returns the newest records of token, newest first.
func (s *CHSignalStore) Recent(ctx context.Context, token models.TokenRef, limit int) ([]models.SignalRecord, error) {
	start := time.Now()
	q := fmt.Sprintf(`
        SELECT created_at, chain_id, token_address, pair_address, venue_id, signal,
               confidence, total_score, reference_price, target_percent, stop_loss_percent, generation
        FROM %s
        WHERE chain_id = ? AND token_address = ?
        ORDER BY created_at DESC
        LIMIT ?
    `, s.qualified())
	rows, err := s.db.QueryContext(ctx, q, token.ChainID, token.Address, limit)
	if err != nil {
		s.l.Error("clickhouse recent_signals query error",
			applogger.String("token", token.Key()),
			applogger.Error(err),
		)
		return nil, fmt.Errorf("recent signals: %w", err)
	}
	defer rows.Close()

	out := make([]models.SignalRecord, 0, limit)
	for rows.Next() {
		var (
			rec        models.SignalRecord
			signal     string
			confidence uint8
		)
		if err := rows.Scan(&rec.CreatedAt, &rec.ChainID, &rec.TokenAddress, &rec.PairAddress, &rec.VenueID, &signal,
			&confidence, &rec.TotalScore, &rec.ReferencePrice, &rec.TargetPercent, &rec.StopLossPercent, &rec.Generation); err != nil {
			return nil, fmt.Errorf("scan signal: %w", err)
		}
		rec.Signal = models.SignalType(signal)
		rec.Confidence = int(confidence)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	s.l.Debug("clickhouse recent_signals ok",
		applogger.String("token", token.Key()),
		applogger.Int("rows", len(out)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return out, nil
}
