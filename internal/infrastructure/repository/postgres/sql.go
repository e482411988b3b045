package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/hockey-league/internal/domain/statline"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// encodeStats serializes a stat map to JSONB. Blank values are kept as
// explicit nulls so a stored row reads back exactly as it was written.
func encodeStats(stats statline.Stats) ([]byte, error) {
	if len(stats) == 0 {
		return []byte("{}"), nil
	}
	data, err := sonic.Marshal(stats)
	if err != nil {
		return nil, fmt.Errorf("encode stats: %w", err)
	}
	return data, nil
}

// decodeStats fails loudly on an unreadable JSONB payload. A row whose
// categories all read as blank would flip matchup points without a trace.
func decodeStats(raw []byte) (statline.Stats, error) {
	if len(raw) == 0 {
		return statline.Stats{}, nil
	}
	var decoded map[string]*float64
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	out := make(statline.Stats, len(decoded))
	for key, value := range decoded {
		if value == nil {
			out.Set(key, statline.Blank())
			continue
		}
		out.Set(key, statline.Of(*value))
	}
	return out, nil
}

func nullableBool(value *bool) sql.NullBool {
	if value == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *value, Valid: true}
}

func boolPtr(value sql.NullBool) *bool {
	if !value.Valid {
		return nil
	}
	out := value.Bool
	return &out
}
