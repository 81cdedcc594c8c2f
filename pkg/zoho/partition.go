package zoho

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/optisale/optisale/pkg/domain"
)

// partitionRecords decodes and normalizes one raw list page into an
// owner partition. A record that fails to decode is logged and skipped;
// one bad record never aborts the page.
func partitionRecords[R any, T domain.Owned](module, emptyKey string, raws []json.RawMessage, normalize func(R) T) *domain.OwnerPartition[T] {
	part := domain.NewOwnerPartition[T](emptyKey)

	skipped := 0
	for _, raw := range raws {
		var rec R
		if err := json.Unmarshal(raw, &rec); err != nil {
			skipped++
			log.Error().Err(err).Str("module", module).Msg("Skipping malformed record")
			continue
		}

		normalized := normalize(rec)
		part.Add(normalized.Owner(), normalized)
	}

	if skipped > 0 {
		log.Warn().Str("module", module).Int("skipped", skipped).Msg("Some records could not be processed")
	}

	return part
}

// fetchPartitioned fetches a module's first page and groups the
// normalized records by owner.
func fetchPartitioned[R any, T domain.Owned](ctx context.Context, c *Client, module, emptyKey string, normalize func(R) T) (*domain.OwnerPartition[T], error) {
	list, err := c.List(ctx, module, nil)
	if err != nil {
		return nil, err
	}

	part := partitionRecords(module, emptyKey, list.Data, normalize)
	log.Info().Str("module", module).Int("records", part.Len()).Int("owners", len(part.Owners())).Msg("Processed records")
	return part, nil
}
