package rate

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComponentType identifies a statutory or structural payroll component.
type ComponentType string

const (
	ComponentBasicPercent      ComponentType = "basic_percent"
	ComponentHRAPercent        ComponentType = "hra_percent"
	ComponentConveyancePercent ComponentType = "conveyance_percent"
	ComponentPFEmployee        ComponentType = "pf_employee"
	ComponentPFEmployer        ComponentType = "pf_employer"
	ComponentPFWageCeiling     ComponentType = "pf_wage_ceiling"
	ComponentPFAdmin           ComponentType = "pf_admin"
	ComponentEDLI              ComponentType = "edli"
	ComponentESIEmployee       ComponentType = "esi_employee"
	ComponentESIEmployer       ComponentType = "esi_employer"
	ComponentProfessionalTax   ComponentType = "professional_tax"
	ComponentLWF               ComponentType = "lwf"
	ComponentTDS               ComponentType = "tds"
	ComponentBonus             ComponentType = "bonus"
	ComponentGratuity          ComponentType = "gratuity"
	ComponentOvertimeRate      ComponentType = "overtime_rate"
)

var componentTypes = map[ComponentType]bool{
	ComponentBasicPercent:      true,
	ComponentHRAPercent:        true,
	ComponentConveyancePercent: true,
	ComponentPFEmployee:        true,
	ComponentPFEmployer:        true,
	ComponentPFWageCeiling:     true,
	ComponentPFAdmin:           true,
	ComponentEDLI:              true,
	ComponentESIEmployee:       true,
	ComponentESIEmployer:       true,
	ComponentProfessionalTax:   true,
	ComponentLWF:               true,
	ComponentTDS:               true,
	ComponentBonus:             true,
	ComponentGratuity:          true,
	ComponentOvertimeRate:      true,
}

func (c ComponentType) Valid() bool {
	return componentTypes[c]
}

// Slabbed reports whether entries of this component type are matched
// against a salary amount in addition to the date window.
func (c ComponentType) Slabbed() bool {
	return c == ComponentProfessionalTax || c == ComponentTDS
}

// ValueKind enum
type ValueKind string

const (
	ValueKindFixed   ValueKind = "fixed"
	ValueKindPercent ValueKind = "percent"
)

// TemporalRateEntry is one validity window for one component type.
// Entries are never deleted, only deactivated or window-closed.
type TemporalRateEntry struct {
	ID            string
	ComponentType ComponentType
	ValueKind     ValueKind
	Value         decimal.Decimal
	EffectiveFrom time.Time
	EffectiveTo   *time.Time // nil = open-ended
	SlabMin       *decimal.Decimal
	SlabMax       *decimal.Decimal
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CoversDate reports whether the entry window contains d.
func (e TemporalRateEntry) CoversDate(d time.Time) bool {
	if e.EffectiveFrom.After(d) {
		return false
	}
	if e.EffectiveTo != nil && e.EffectiveTo.Before(d) {
		return false
	}
	return true
}

// CoversSalary reports whether salary falls inside the entry's slab bounds.
// Bounds are inclusive on both ends; a nil bound is open.
func (e TemporalRateEntry) CoversSalary(salary decimal.Decimal) bool {
	if e.SlabMin != nil && salary.LessThan(*e.SlabMin) {
		return false
	}
	if e.SlabMax != nil && salary.GreaterThan(*e.SlabMax) {
		return false
	}
	return true
}
