package lesson

import (
	"fmt"
	"time"

	"combatbible/gymdesk/internal/domain"
	"github.com/google/uuid"
)

// Catalog resolves technique packs by id.
type Catalog interface {
	Pack(id string) (domain.TechniquePack, bool)
}

// UnknownCoach names the coach on deviations for lessons nobody ended.
const UnknownCoach = "Unknown coach"

// Deviations returns the planned pack ids missing from confirmed, in plan
// order and without duplicates.
func Deviations(plan []domain.PlannedItem, confirmed []string) []string {
	ok := make(map[string]struct{}, len(confirmed))
	for _, id := range confirmed {
		ok[id] = struct{}{}
	}
	seen := make(map[string]struct{}, len(plan))
	missing := []string{}
	for _, it := range plan {
		if _, hit := ok[it.PackID]; hit {
			continue
		}
		if _, dup := seen[it.PackID]; dup {
			continue
		}
		seen[it.PackID] = struct{}{}
		missing = append(missing, it.PackID)
	}
	return missing
}

// PackTitle resolves a title from cat, falling back to domain.UnknownPackTitle.
func PackTitle(cat Catalog, id string) string {
	if cat == nil {
		return domain.UnknownPackTitle
	}
	if p, ok := cat.Pack(id); ok && p.Title != "" {
		return p.Title
	}
	return domain.UnknownPackTitle
}

// IDFunc generates a deviation record id.
type IDFunc func(packID string, at time.Time) string

// DefaultDeviationID is the detection time in milliseconds, the pack id, and
// a random suffix so two records in the same millisecond never collide.
func DefaultDeviationID(packID string, at time.Time) string {
	return fmt.Sprintf("%d-%s-%s", at.UnixMilli(), packID, uuid.NewString()[:8])
}

// BuildDeviationRecords turns missing pack ids into records, one per id.
func BuildDeviationRecords(missing []string, cat Catalog, coach, student string, at time.Time, newID IDFunc) []domain.DeviationRecord {
	if newID == nil {
		newID = DefaultDeviationID
	}
	if coach == "" {
		coach = UnknownCoach
	}
	records := make([]domain.DeviationRecord, 0, len(missing))
	for _, id := range missing {
		records = append(records, domain.DeviationRecord{
			ID:         newID(id, at),
			Coach:      coach,
			Student:    student,
			PackID:     id,
			PackTitle:  PackTitle(cat, id),
			DetectedAt: at,
		})
	}
	return records
}
