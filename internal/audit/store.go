package audit

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/tutor-booking/internal/models"
)

type Filter struct {
	ActorID string
	Action  string
	Entity  string
	From    *time.Time
	To      *time.Time

	Page  int
	Limit int
}

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

func (f Filter) normalized() Filter {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > MaxLimit {
		f.Limit = DefaultLimit
	}
	return f
}

func (f Filter) offset() int {
	return (f.Page - 1) * f.Limit
}

type Store interface {
	Write(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error)
}

// Entry turns an event into its persisted form. Metadata that fails to
// marshal is dropped.
func Entry(ev Event) models.AuditLog {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	return models.AuditLog{
		ActorID:  ev.ActorID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}
}

// ======================================================
// GORM
// ======================================================

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Write(ctx context.Context, entry *models.AuditLog) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *GormStore) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	f = f.normalized()

	q := s.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("actor_id = ?", f.ActorID)

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.offset()).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// ======================================================
// MEMORY
// ======================================================

type MemoryStore struct {
	mu     sync.RWMutex
	nextID uint
	logs   []models.AuditLog
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Write(ctx context.Context, entry *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	entry.ID = s.nextID
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.logs = append(s.logs, *entry)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	f = f.normalized()

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.AuditLog, 0)
	for _, l := range s.logs {
		switch {
		case l.ActorID != f.ActorID:
		case f.Action != "" && l.Action != f.Action:
		case f.Entity != "" && l.Entity != f.Entity:
		case f.From != nil && l.CreatedAt.Before(*f.From):
		case f.To != nil && !l.CreatedAt.Before(*f.To):
		default:
			matched = append(matched, l)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	start := min(f.offset(), len(matched))
	end := min(start+f.Limit, len(matched))
	return matched[start:end], total, nil
}
