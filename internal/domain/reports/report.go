package reports

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserReport persists the target as three nullable columns; exactly one is set.
type UserReport struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ReporterID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"reporter_id"`
	ReportedUserID    *uuid.UUID `gorm:"type:uuid;index" json:"reported_user_id,omitempty"`
	ReportedProductID *uuid.UUID `gorm:"type:uuid;index" json:"reported_product_id,omitempty"`
	ReportedStoreID   *uuid.UUID `gorm:"type:uuid;index" json:"reported_store_id,omitempty"`
	Reason            string     `gorm:"column:reason;not null" json:"reason"`
	Description       string     `gorm:"column:description;not null" json:"description"`

	// pending|reviewed|resolved|dismissed
	Status string `gorm:"column:status;type:varchar(16);not null;index" json:"status"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (UserReport) TableName() string { return "user_report" }

func (r *UserReport) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type TargetKind string

const (
	TargetUser    TargetKind = "user"
	TargetProduct TargetKind = "product"
	TargetStore   TargetKind = "store"
)

// Target is the reported entity: exactly one of user, product or store.
type Target struct {
	Kind TargetKind
	ID   uuid.UUID
}

var (
	ErrNoTarget        = errors.New("report must name a reported user, product or store")
	ErrMultipleTargets = errors.New("report must name exactly one reported user, product or store")
)

// TargetFromColumns folds the three optional ids into a Target.
func TargetFromColumns(userID, productID, storeID *uuid.UUID) (Target, error) {
	var out Target
	n := 0
	for _, c := range []struct {
		kind TargetKind
		id   *uuid.UUID
	}{
		{TargetUser, userID},
		{TargetProduct, productID},
		{TargetStore, storeID},
	} {
		if c.id == nil || *c.id == uuid.Nil {
			continue
		}
		n++
		out = Target{Kind: c.kind, ID: *c.id}
	}
	switch n {
	case 0:
		return Target{}, ErrNoTarget
	case 1:
		return out, nil
	default:
		return Target{}, ErrMultipleTargets
	}
}

// Apply writes t into the matching nullable column of r and clears the others.
func (t Target) Apply(r *UserReport) {
	r.ReportedUserID, r.ReportedProductID, r.ReportedStoreID = nil, nil, nil
	id := t.ID
	switch t.Kind {
	case TargetUser:
		r.ReportedUserID = &id
	case TargetProduct:
		r.ReportedProductID = &id
	case TargetStore:
		r.ReportedStoreID = &id
	}
}

// Target reads the report's target back out of its columns.
func (r *UserReport) Target() (Target, error) {
	return TargetFromColumns(r.ReportedUserID, r.ReportedProductID, r.ReportedStoreID)
}

const (
	StatusPending   = "pending"
	StatusReviewed  = "reviewed"
	StatusResolved  = "resolved"
	StatusDismissed = "dismissed"
)

var transitions = map[string][]string{
	StatusPending:   {StatusReviewed, StatusDismissed},
	StatusReviewed:  {StatusResolved},
	StatusDismissed: {StatusResolved},
	StatusResolved:  nil,
}

func NormalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func IsKnownStatus(s string) bool {
	_, ok := transitions[NormalizeStatus(s)]
	return ok
}

func CanTransition(from, to string) bool {
	for _, next := range transitions[NormalizeStatus(from)] {
		if next == NormalizeStatus(to) {
			return true
		}
	}
	return false
}
