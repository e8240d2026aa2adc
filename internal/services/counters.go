package services

import (
	"errors"
	"net/url"
	"sort"
	"strings"

	"meriter/internal/db"
	"meriter/internal/domain"
	"meriter/internal/models"

	"gorm.io/gorm"
)

// CanonicalKey serializes a meta filter deterministically (sorted keys) so
// the same filter always addresses the same counter row. Keys and values are
// escaped so a value containing the separators can not collide two distinct
// filters into one key.
func CanonicalKey(meta map[string]string) string {
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(meta[k]))
	}
	return b.String()
}

// PushToCounter atomically adds delta to the counter matched by meta. When no
// counter exists and upsert is true, it is created seeded at delta; otherwise
// the push fails with domain.ErrCounterNotFound. Returns the accumulated
// value. The increment is a single UPDATE so concurrent pushes never lose
// deltas.
func PushToCounter(delta int64, meta map[string]string, upsert bool) (int64, error) {
	key := CanonicalKey(meta)

	res := db.DB.Model(&models.Counter{}).
		Where("key = ?", key).
		UpdateColumn("value", gorm.Expr("value + ?", delta))
	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected == 0 {
		if !upsert {
			return 0, domain.ErrCounterNotFound
		}
		// First push seeds the counter. Losing the insert race to a
		// concurrent first push turns ours into a plain increment.
		if err := db.DB.Create(&models.Counter{Key: key, Value: delta}).Error; err != nil {
			res = db.DB.Model(&models.Counter{}).
				Where("key = ?", key).
				UpdateColumn("value", gorm.Expr("value + ?", delta))
			if res.Error != nil {
				return 0, res.Error
			}
			if res.RowsAffected == 0 {
				return 0, err
			}
		}
	}

	var counter models.Counter
	if err := db.DB.Where("key = ?", key).First(&counter).Error; err != nil {
		return 0, err
	}
	return counter.Value, nil
}

// GetCounter reads the current accumulated value for meta.
func GetCounter(meta map[string]string) (int64, error) {
	var counter models.Counter
	err := db.DB.Where("key = ?", CanonicalKey(meta)).First(&counter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrCounterNotFound
		}
		return 0, err
	}
	return counter.Value, nil
}

// ViewsMeta is the counter filter backing a publication's view tally.
func ViewsMeta(publicationUID string) map[string]string {
	return map[string]string{"selector": "views", "publication": publicationUID}
}
