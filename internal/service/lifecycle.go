package service

import (
	"math"
	"time"

	"github.com/mmoldabe-dev/ListingSubscriptions/internal/clock"
	"github.com/mmoldabe-dev/ListingSubscriptions/internal/domain"
)

const day = 24 * time.Hour

// Derivation результат чистого вычисления статуса
type Derivation struct {
	Status         domain.ViewStatus
	DaysRemaining  int
	NeedsWriteBack bool
}

// DaysRemaining считает ceil((endDate - now) / 1 день) от 00:00 UTC дня
// окончания. endDate последний оплаченный день: пока он не закончился,
// остаток не меньше 1. После endDate остаток 0.
func DaysRemaining(endDate, now time.Time) int {
	end := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, time.UTC)
	if clock.TruncateDay(now).After(end) {
		return 0
	}

	days := int(math.Ceil(float64(end.Sub(now)) / float64(day)))
	if days < 1 {
		return 1
	}
	return days
}

// Derive вычисляет внешний статус по сохраненному статусу и датам.
// NeedsWriteBack выставляется только для active записи, у которой вышел срок.
func Derive(stored domain.StoredStatus, endDate, now time.Time) Derivation {
	days := DaysRemaining(endDate, now)

	switch {
	case stored == domain.StoredCancelled, stored == domain.StoredExpired:
		return Derivation{Status: domain.ViewExpired, DaysRemaining: days}
	case days <= 0:
		return Derivation{
			Status:         domain.ViewExpired,
			DaysRemaining:  0,
			NeedsWriteBack: stored == domain.StoredActive,
		}
	default:
		return Derivation{Status: domain.ViewActive, DaysRemaining: days}
	}
}
