package drive

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pantryops/restockd/internal/csvio"
	"github.com/pantryops/restockd/internal/service"
)

// Importer syncs a Drive folder of inventory CSVs into the local store. The
// newest file wins; earlier ones are only logged.
type Importer struct {
	driveService   *Service
	restockService *service.RestockService
}

func NewImporter(driveService *Service, restockService *service.RestockService) *Importer {
	return &Importer{
		driveService:   driveService,
		restockService: restockService,
	}
}

// SyncFolder imports the most recently modified CSV found under the folder
// path and returns the number of items imported.
func (im *Importer) SyncFolder(ctx context.Context, folderPath string) (int, error) {
	folderID, err := im.driveService.FindFolderByPath(folderPath)
	if err != nil {
		return 0, err
	}

	files, err := im.driveService.ListFiles(folderID)
	if err != nil {
		return 0, err
	}

	var latest *File
	for _, f := range files {
		if strings.ToLower(filepath.Ext(f.Name)) != ".csv" {
			continue
		}
		if latest == nil || f.ModifiedTime > latest.ModifiedTime {
			latest = f
		}
	}
	if latest == nil {
		return 0, fmt.Errorf("no csv files in drive folder %q", folderPath)
	}

	log.Info().
		Str("file", latest.Name).
		Str("modified", latest.ModifiedTime).
		Msg("importing inventory from drive")

	return im.ImportFile(ctx, latest.ID)
}

// ImportFile streams one Drive CSV straight into the inventory store.
func (im *Importer) ImportFile(ctx context.Context, fileID string) (int, error) {
	pr, pw := io.Pipe()
	go func() {
		err := im.driveService.DownloadFile(fileID, pw)
		pw.CloseWithError(err)
	}()

	result, err := csvio.Read(pr)
	if err != nil {
		return 0, fmt.Errorf("failed to parse drive csv: %w", err)
	}
	if result.SkippedRows > 0 {
		log.Warn().Int("skipped_rows", result.SkippedRows).Msg("drive import skipped unusable rows")
	}

	if err := im.restockService.ImportInventory(ctx, result.Items); err != nil {
		return 0, err
	}

	return len(result.Items), nil
}
