package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/aussiedatagal/nsw-food-penalty-map/internal/grouper"
	"github.com/aussiedatagal/nsw-food-penalty-map/internal/model"
)

// DecodeGroups reads a dataset document and returns location groups. Two
// shapes are accepted:
//
//   - an array of already-grouped locations (grouped_locations.json, the
//     pipeline's published output), used as-is;
//   - a keyed object, either of location groups (entries carrying a
//     "penalties" array) or of flat penalty records (penalty_notices.json,
//     the pipeline's intermediate output), which are grouped here. Object
//     key order is meaningless, so entries are sorted by key first to keep
//     the output deterministic.
func DecodeGroups(r io.Reader) ([]model.LocationGroup, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: read")
	}

	switch firstToken(data) {
	case '[':
		var groups []model.LocationGroup
		if err := json.Unmarshal(data, &groups); err != nil {
			return nil, eris.Wrap(err, "dataset: decode group array")
		}
		return groups, nil
	case '{':
		var keyed map[string]json.RawMessage
		if err := json.Unmarshal(data, &keyed); err != nil {
			return nil, eris.Wrap(err, "dataset: decode keyed document")
		}

		keys := make([]string, 0, len(keyed))
		for k := range keyed {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		if keyedHoldsGroups(keyed) {
			groups := make([]model.LocationGroup, 0, len(keyed))
			for _, k := range keys {
				var g model.LocationGroup
				if err := json.Unmarshal(keyed[k], &g); err != nil {
					return nil, eris.Wrapf(err, "dataset: decode group %s", k)
				}
				groups = append(groups, g)
			}
			return groups, nil
		}

		records := make([]model.PenaltyRecord, 0, len(keyed))
		for _, k := range keys {
			var rec model.PenaltyRecord
			if err := json.Unmarshal(keyed[k], &rec); err != nil {
				return nil, eris.Wrapf(err, "dataset: decode record %s", k)
			}
			records = append(records, rec)
		}
		return grouper.Group(records), nil
	default:
		return nil, eris.New("dataset: document is neither a JSON array nor an object")
	}
}

// keyedHoldsGroups sniffs whether a keyed document maps ids to location
// groups rather than flat records, by probing one entry for a penalties
// array.
func keyedHoldsGroups(keyed map[string]json.RawMessage) bool {
	for _, raw := range keyed {
		var probe struct {
			Penalties json.RawMessage `json:"penalties"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil {
			return false
		}
		return probe.Penalties != nil
	}
	return false
}

func firstToken(data []byte) byte {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// Load reads the dataset from a local path or an http(s) URL.
func Load(ctx context.Context, f *HTTPFetcher, source string) ([]model.LocationGroup, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		body, err := f.Download(ctx, source)
		if err != nil {
			return nil, err
		}
		defer body.Close() //nolint:errcheck
		return DecodeGroups(body)
	}

	file, err := os.Open(source)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open %s", source)
	}
	defer file.Close() //nolint:errcheck
	return DecodeGroups(file)
}
