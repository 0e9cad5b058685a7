package subscriptions

import (
	"errors"
	"fmt"

	"timestamper-api/internal/domain/plans"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("subscription not found")

// QuotaExceededError carries the counts the export endpoint reports back to
// the client alongside the 403.
type QuotaExceededError struct {
	Plan string
	Used int
	Max  int
}

func (e QuotaExceededError) Error() string {
	return fmt.Sprintf("export limit reached: plan=%s used=%d max=%d", e.Plan, e.Used, e.Max)
}

// Summary is the wire shape of GET /api/subscription/:userId.
type Summary struct {
	Plan             string `json:"plan"`
	ExportsUsed      int    `json:"exportsUsed"`
	ExportsLimit     *int   `json:"exportsLimit"`
	ExportsRemaining *int   `json:"exportsRemaining"`
}

// Summarize computes the remaining count from the fixed plan table, matching
// how the subscription endpoint always reported it.
func Summarize(sub Subscription) Summary {
	s := Summary{
		Plan:         sub.Plan,
		ExportsUsed:  sub.ExportsUsed,
		ExportsLimit: sub.ExportsLimit,
	}
	if limit := plans.ExportLimit(sub.Plan); limit != nil {
		remaining := *limit - sub.ExportsUsed
		s.ExportsRemaining = &remaining
	}
	return s
}

// Get looks up a user's subscription row.
func Get(db *gorm.DB, userID string) (Subscription, error) {
	var sub Subscription
	err := db.Where("user_id = ?", userID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sub, ErrNotFound
	}
	return sub, err
}

// Consume spends one export. The increment is a single conditional UPDATE so
// concurrent callers cannot push exports_used past exports_limit.
func Consume(db *gorm.DB, userID string, format string) (Subscription, error) {
	res := db.Model(&Subscription{}).
		Where("user_id = ? AND (exports_limit IS NULL OR exports_used < exports_limit)", userID).
		UpdateColumn("exports_used", gorm.Expr("exports_used + 1"))
	if res.Error != nil {
		return Subscription{}, res.Error
	}

	sub, err := Get(db, userID)
	if err != nil {
		return Subscription{}, err
	}

	if res.RowsAffected == 0 {
		max := 0
		if limit := plans.ExportLimit(sub.Plan); limit != nil {
			max = *limit
		}
		return sub, QuotaExceededError{Plan: sub.Plan, Used: sub.ExportsUsed, Max: max}
	}

	record := ExportRecord{UserID: userID, Format: format}
	if err := db.Create(&record).Error; err != nil {
		return sub, err
	}

	return sub, nil
}

// Activate upserts the user onto a plan with a freshly reset quota. Keyed by
// user_id, so webhook redelivery and the client verify path land on the same
// final row.
func Activate(db *gorm.DB, userID string, plan string) error {
	sub := Subscription{
		UserID:       userID,
		Plan:         plan,
		Status:       "active",
		ExportsUsed:  0,
		ExportsLimit: plans.ExportLimit(plan),
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"plan", "status", "exports_used", "exports_limit", "updated_at"}),
	}).Create(&sub).Error
}

// EnsureDefault creates the Free subscription row if the user has none.
// Existing rows are left untouched.
func EnsureDefault(db *gorm.DB, userID string) error {
	sub := Subscription{
		UserID:       userID,
		Plan:         plans.Free,
		Status:       "active",
		ExportsUsed:  0,
		ExportsLimit: plans.ExportLimit(plans.Free),
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&sub).Error
}
