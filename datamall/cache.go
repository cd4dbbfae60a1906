package datamall

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Cache persists fetched API snapshots as JSON files so a build can be
// replayed without touching the network. Files are deliberately plain,
// indented JSON: operators inspect them by hand when a build looks wrong.
type Cache struct {
	dir    string
	logger *zap.Logger
}

// NewCache creates a cache rooted at dir.
func NewCache(logger *zap.Logger, dir string) *Cache {
	return &Cache{
		dir:    dir,
		logger: logger,
	}
}

type cacheEnvelope struct {
	FetchedAt   time.Time       `json:"fetched_at"`
	RecordCount int             `json:"record_count"`
	Records     json.RawMessage `json:"records"`
}

func (c *Cache) path(name string) string {
	return filepath.Join(c.dir, name+".json")
}

// Save writes one dataset snapshot. records must be a slice.
func (c *Cache) Save(name string, records interface{}) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return err
	}
	var count int
	{
		var probe []json.RawMessage
		if err := json.Unmarshal(raw, &probe); err != nil {
			return fmt.Errorf("cache snapshot %q is not a slice: %w", name, err)
		}
		count = len(probe)
	}

	data, err := json.MarshalIndent(cacheEnvelope{
		FetchedAt:   time.Now().UTC(),
		RecordCount: count,
		Records:     raw,
	}, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(c.path(name), data, 0o644); err != nil {
		return err
	}
	c.logger.Info("saved snapshot",
		zap.String("dataset", name),
		zap.Int("records", count),
	)
	return nil
}

// Load reads one dataset snapshot into out, which must be a pointer to a
// slice of the dataset's record type.
func (c *Cache) Load(name string, out interface{}) error {
	data, err := os.ReadFile(c.path(name))
	if err != nil {
		return err
	}

	var env cacheEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("cache snapshot %q is corrupt: %w", name, err)
	}
	return json.Unmarshal(env.Records, out)
}

// Describe reports when a snapshot was fetched and how many records it
// holds, without decoding the records.
func (c *Cache) Describe(name string) (fetchedAt time.Time, records int, err error) {
	data, err := os.ReadFile(c.path(name))
	if err != nil {
		return time.Time{}, 0, err
	}
	var env cacheEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return time.Time{}, 0, err
	}
	return env.FetchedAt, env.RecordCount, nil
}
