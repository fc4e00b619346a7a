package store

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/maa-telecom/repair-pos-api/models"
)

// StorageKey names the single entry holding the JSON-encoded repair list.
// The key is shared with earlier deployments of the shop's records, so it
// must not change.
const StorageKey = "maa_telecom_repairs"

// StorageEntry is one named blob in the key-value storage table.
type StorageEntry struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"type:text"`
}

// TableName specifies the table name for the StorageEntry model
func (StorageEntry) TableName() string {
	return "storage_entries"
}

// RepairStore owns the canonical ordered list of repair records, newest
// first. The full list is read from storage once at startup and written back
// in full after every mutation. Callers never touch storage directly.
type RepairStore struct {
	db      *gorm.DB
	mu      sync.RWMutex
	repairs []models.RepairJob
}

// NewRepairStore creates a store backed by db. Call Load before serving.
func NewRepairStore(db *gorm.DB) *RepairStore {
	return &RepairStore{db: db}
}

// Load reads the persisted repair list. A missing entry means a fresh shop
// and yields an empty list; a malformed entry is logged and treated as empty
// rather than failing startup.
func (s *RepairStore) Load() error {
	var entry StorageEntry
	err := s.db.First(&entry, "key = ?", StorageKey).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			s.mu.Lock()
			s.repairs = nil
			s.mu.Unlock()
			return nil
		}
		return fmt.Errorf("failed to read storage entry %s: %w", StorageKey, err)
	}

	var repairs []models.RepairJob
	if err := json.Unmarshal([]byte(entry.Value), &repairs); err != nil {
		log.WithFields(log.Fields{
			"key":   StorageKey,
			"error": err,
		}).Warn("Stored repair list is malformed, starting with an empty list")
		repairs = nil
	}

	s.mu.Lock()
	s.repairs = repairs
	s.mu.Unlock()
	return nil
}

// GetAll returns a copy of the current list, most recently created first.
func (s *RepairStore) GetAll() []models.RepairJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	repairs := make([]models.RepairJob, len(s.repairs))
	copy(repairs, s.repairs)
	return repairs
}

// Count returns the number of records in the store.
func (s *RepairStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.repairs)
}

// FindByID returns the record with the given id, if present.
func (s *RepairStore) FindByID(id string) (models.RepairJob, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.repairs {
		if r.ID == id {
			return r, true
		}
	}
	return models.RepairJob{}, false
}

// Draft is a not-yet-persisted repair job lacking system-assigned
// identifiers.
type Draft struct {
	CustomerName     string
	CustomerPhone    string
	DeviceModel      string
	IMEI             string
	IssueDescription string
	EstimatedCost    float64
	AdvancePaid      float64
	LaborCharge      float64
	PartsUsed        []models.Part
	Status           models.RepairStatus
	Notes            string
	AIDiagnostic     string
}

// Create turns a draft into a persisted record: it assigns the opaque id,
// the invoice number, and the timestamps, then inserts the record at the
// head of the list and writes the list back to storage. The invoice number
// is an independent 4-digit random suffix with no uniqueness check; that
// matches the numbers already in circulation at the shop, collisions
// included.
func (s *RepairStore) Create(draft Draft) models.RepairJob {
	now := time.Now()
	status := draft.Status
	if status == "" {
		status = models.StatusPending
	}

	repair := models.RepairJob{
		ID:               uuid.NewString(),
		InvoiceNumber:    fmt.Sprintf("MAA-%d", 1000+rand.Intn(9000)),
		CustomerName:     draft.CustomerName,
		CustomerPhone:    draft.CustomerPhone,
		DeviceModel:      draft.DeviceModel,
		IMEI:             draft.IMEI,
		IssueDescription: draft.IssueDescription,
		EstimatedCost:    draft.EstimatedCost,
		AdvancePaid:      draft.AdvancePaid,
		LaborCharge:      draft.LaborCharge,
		PartsUsed:        dedupeParts(draft.PartsUsed),
		Status:           status,
		CreatedAt:        now,
		UpdatedAt:        now,
		Notes:            draft.Notes,
		AIDiagnostic:     draft.AIDiagnostic,
	}

	s.mu.Lock()
	s.repairs = append([]models.RepairJob{repair}, s.repairs...)
	s.save()
	s.mu.Unlock()

	log.WithFields(log.Fields{
		"id":      repair.ID,
		"invoice": repair.InvoiceNumber,
	}).Info("Repair record created")
	return repair
}

// Delete removes the record with the given id and persists the shortened
// list. It reports whether a record was removed; deleting an unknown id is a
// no-op. The caller is responsible for having confirmed the action.
func (s *RepairStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.repairs {
		if r.ID == id {
			s.repairs = append(s.repairs[:i], s.repairs[i+1:]...)
			s.save()
			log.WithField("id", id).Info("Repair record deleted")
			return true
		}
	}
	return false
}

// save writes the full list back to the single storage entry. Persistence is
// best effort: a write failure is logged but never surfaced, and the
// in-memory list stays authoritative for the session. Callers must hold mu.
func (s *RepairStore) save() {
	data, err := json.Marshal(s.repairs)
	if err != nil {
		log.WithError(err).Error("Failed to encode repair list")
		return
	}

	entry := StorageEntry{Key: StorageKey, Value: string(data)}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error
	if err != nil {
		log.WithError(err).Error("Failed to persist repair list")
	}
}

// dedupeParts drops parts repeating an earlier part's id, keeping selection
// order. The intake form toggles parts on and off, so a duplicate id in a
// submitted draft is always a client bug.
func dedupeParts(parts []models.Part) []models.Part {
	if len(parts) == 0 {
		return parts
	}
	seen := make(map[string]bool, len(parts))
	deduped := make([]models.Part, 0, len(parts))
	for _, p := range parts {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		deduped = append(deduped, p)
	}
	return deduped
}

var storeInstance *RepairStore

// Init creates the global store instance on top of db and loads it.
func Init(db *gorm.DB) (*RepairStore, error) {
	s := NewRepairStore(db)
	if err := s.Load(); err != nil {
		return nil, err
	}
	storeInstance = s
	return s, nil
}

// Get returns the initialized store instance.
func Get() *RepairStore {
	return storeInstance
}

// Set sets the store instance (primarily for testing).
func Set(s *RepairStore) {
	storeInstance = s
}
