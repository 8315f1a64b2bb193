package handlers

import (
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-manager/internal/models"
	"github.com/ukydev/fleet-manager/internal/store"
)

// RecordHandler serves collection listings and single records.
type RecordHandler struct {
	store store.RecordStore
}

// NewRecordHandler creates a record handler.
func NewRecordHandler(s store.RecordStore) *RecordHandler {
	return &RecordHandler{store: s}
}

// ListRecords handles GET /api/records/{collection}.
func (h *RecordHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")
	if !store.ValidCollection(collection) {
		http.Error(w, "Unknown collection", http.StatusNotFound)
		return
	}

	records, err := h.store.ListAll(r.Context(), collection)
	if err != nil {
		log.WithError(err).WithField("collection", collection).Error("Failed to list records")
		http.Error(w, "Failed to list records", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []models.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

// GetRecord handles GET /api/records/{collection}/{id}.
func (h *RecordHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")
	id := r.PathValue("id")
	if !store.ValidCollection(collection) {
		http.Error(w, "Unknown collection", http.StatusNotFound)
		return
	}
	if id == "" {
		http.Error(w, "Record id is required", http.StatusBadRequest)
		return
	}

	record, err := h.store.Get(r.Context(), collection, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Record not found", http.StatusNotFound)
			return
		}
		log.WithError(err).WithFields(log.Fields{"collection": collection, "id": id}).Error("Failed to get record")
		http.Error(w, "Failed to get record", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, record)
}
