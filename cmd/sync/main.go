// cmd/sync/main.go
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/pantryops/restockd/internal/config"
	"github.com/pantryops/restockd/internal/drive"
	"github.com/pantryops/restockd/internal/repository/postgres"
	"github.com/pantryops/restockd/internal/service"
)

// The sync server is a small ops-only surface: it pulls inventory CSVs from a
// shared Drive folder into the database on demand. It deliberately stays off
// the main API so Drive credentials never load into the public server.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	driveService, err := drive.NewService(cfg.Drive.CredentialsJSON)
	if err != nil {
		log.Fatalf("Failed to initialize Google Drive service: %v", err)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	repo := postgres.NewInventoryRepository(db)
	restockService := service.NewRestockService(repo, nil, cfg.App.HouseholdSize)
	importer := drive.NewImporter(driveService, restockService)

	r := mux.NewRouter()

	r.HandleFunc("/sync/drive", func(w http.ResponseWriter, req *http.Request) {
		folderPath := req.URL.Query().Get("folder")
		if folderPath == "" {
			folderPath = cfg.Drive.FolderPath
		}

		imported, err := importer.SyncFolder(req.Context(), folderPath)
		if err != nil {
			w.WriteHeader(http.StatusBadGateway)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}

		json.NewEncoder(w).Encode(map[string]int{"imported": imported})
	}).Methods("POST")

	r.HandleFunc("/sync/drive/files", func(w http.ResponseWriter, req *http.Request) {
		folderID, err := driveService.FindFolderByPath(cfg.Drive.FolderPath)
		if err != nil {
			w.WriteHeader(http.StatusBadGateway)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}

		files, err := driveService.ListFiles(folderID)
		if err != nil {
			w.WriteHeader(http.StatusBadGateway)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}

		json.NewEncoder(w).Encode(files)
	}).Methods("GET")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Sync server starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
