// Package pipeline merges many inventory CSV snapshots into one inventory
// using a bounded worker pool. Households that export per-store or per-room
// sheets drop them all in one directory and ingest in a single pass.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/pantryops/restockd/internal/csvio"
	"github.com/pantryops/restockd/internal/domain"
)

const defaultWorkerCount = 4

// Config controls ingest concurrency.
type Config struct {
	WorkerCount int
}

// FileError records one file that could not be ingested.
type FileError struct {
	Path string
	Err  error
}

// Result is the outcome of one ingest run.
type Result struct {
	Items       []domain.InventoryItem
	Files       int
	SkippedRows int
	Failed      []FileError
}

// Ingestor reads inventory CSVs concurrently and merges them by item ID.
type Ingestor struct {
	cfg Config

	mu     sync.Mutex
	merged map[string]mergedItem
	result Result
}

// mergedItem remembers which file an item came from so collisions resolve by
// file order even though workers finish out of order.
type mergedItem struct {
	item domain.InventoryItem
	src  int
}

func NewIngestor(cfg Config) *Ingestor {
	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = defaultWorkerCount
	}
	return &Ingestor{
		cfg:    cfg,
		merged: make(map[string]mergedItem),
	}
}

// IngestDir ingests every CSV file directly under dir.
func (in *Ingestor) IngestDir(ctx context.Context, dir string) (*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.ToLower(filepath.Ext(entry.Name())) != ".csv" {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no csv files in %s", dir)
	}
	sort.Strings(files)

	return in.Ingest(ctx, files)
}

// Ingest processes the given files with a worker pool. Files that fail to
// parse are reported in Result.Failed; one bad sheet does not abort the run.
// Later files win ID collisions, so list files oldest first.
func (in *Ingestor) Ingest(ctx context.Context, files []string) (*Result, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to ingest")
	}

	type job struct {
		idx  int
		path string
	}

	jobChan := make(chan job, len(files))
	var wg sync.WaitGroup

	for i := 0; i < in.cfg.WorkerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for j := range jobChan {
				if err := in.ingestFile(j.idx, j.path); err != nil {
					log.Warn().Err(err).Int("worker", workerID).Str("file", j.path).Msg("ingest failed")
					in.mu.Lock()
					in.result.Failed = append(in.result.Failed, FileError{Path: j.path, Err: err})
					in.mu.Unlock()
				}
			}
		}(i)
	}

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			// Drain the pool before returning so no worker is still writing
			// to the shared result.
			close(jobChan)
			wg.Wait()
			return nil, err
		}
		jobChan <- job{idx: i, path: path}
	}
	close(jobChan)

	wg.Wait()

	in.mu.Lock()
	defer in.mu.Unlock()

	if len(in.merged) == 0 {
		return nil, fmt.Errorf("no usable items in %d files", len(files))
	}

	items := make([]domain.InventoryItem, 0, len(in.merged))
	for _, m := range in.merged {
		items = append(items, m.item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	in.result.Items = items
	sort.Slice(in.result.Failed, func(i, j int) bool {
		return in.result.Failed[i].Path < in.result.Failed[j].Path
	})

	result := in.result
	return &result, nil
}

func (in *Ingestor) ingestFile(idx int, path string) error {
	parsed, err := csvio.ReadFile(path)
	if err != nil {
		return err
	}

	// Generated row IDs only need to be unique within one file; qualify them
	// with the file name so two sheets cannot collide on "row-2".
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for i := range parsed.Items {
		if strings.HasPrefix(parsed.Items[i].ID, "row-") {
			parsed.Items[i].ID = base + "-" + parsed.Items[i].ID
		}
	}

	in.mu.Lock()
	defer in.mu.Unlock()

	for _, item := range parsed.Items {
		if existing, ok := in.merged[item.ID]; ok && existing.src > idx {
			continue
		}
		in.merged[item.ID] = mergedItem{item: item, src: idx}
	}
	in.result.Files++
	in.result.SkippedRows += parsed.SkippedRows

	return nil
}
