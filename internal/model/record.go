package model

// LineItem identifies one of the ten claimed categories in the ARR summary
type LineItem string

const (
	ItemROE          LineItem = "roe"
	ItemDepreciation LineItem = "depreciation"
	ItemFuel         LineItem = "fuel"
	ItemOM           LineItem = "om"
	ItemIFC          LineItem = "ifc"
	ItemMasterTrust  LineItem = "master_trust"
	ItemNTI          LineItem = "nti"
	ItemIntangibles  LineItem = "intangibles"
	ItemOtherExp     LineItem = "other_expenses"
	ItemExceptional  LineItem = "exceptional_items"
)

// LineItemOrder is the canonical report ordering of the ten line items.
var LineItemOrder = []LineItem{
	ItemROE,
	ItemDepreciation,
	ItemFuel,
	ItemOM,
	ItemIFC,
	ItemMasterTrust,
	ItemNTI,
	ItemIntangibles,
	ItemOtherExp,
	ItemExceptional,
}

// Title returns the display name used in reports
func (li LineItem) Title() string {
	switch li {
	case ItemROE:
		return "Return on Equity"
	case ItemDepreciation:
		return "Depreciation"
	case ItemFuel:
		return "Fuel / Cost of Generation"
	case ItemOM:
		return "O&M Expenses"
	case ItemIFC:
		return "Interest & Finance Charges"
	case ItemMasterTrust:
		return "Master Trust Bond Interest"
	case ItemNTI:
		return "Non-Tariff Income"
	case ItemIntangibles:
		return "Intangible Assets"
	case ItemOtherExp:
		return "Other Expenses"
	case ItemExceptional:
		return "Exceptional Items"
	default:
		return string(li)
	}
}

// Schedule identifies one of the ten supporting schedules
type Schedule string

const (
	ScheduleDepreciation Schedule = "depreciation-schedule"
	ScheduleLandValues   Schedule = "land-values"
	ScheduleGrants       Schedule = "grants-contributions"
	ScheduleGFAAdditions Schedule = "gfa-additions"
	ScheduleFuelDetail   Schedule = "fuel-detail"
	ScheduleOMDetail     Schedule = "om-detail"
	ScheduleIFCDetail    Schedule = "ifc-detail"
	ScheduleMasterTrust  Schedule = "master-trust-detail"
	ScheduleNTIDetail    Schedule = "nti-detail"
	ScheduleIntangibles  Schedule = "intangibles-detail"
)

// ScheduleOrder is the canonical ordering of the ten supporting schedules.
var ScheduleOrder = []Schedule{
	ScheduleDepreciation,
	ScheduleLandValues,
	ScheduleGrants,
	ScheduleGFAAdditions,
	ScheduleFuelDetail,
	ScheduleOMDetail,
	ScheduleIFCDetail,
	ScheduleMasterTrust,
	ScheduleNTIDetail,
	ScheduleIntangibles,
}

// TableID is the canonical identifier of a physical table in the filing
// (e.g. "G8", "G9", "5.27"). Page numbers vary between filings; tables are
// addressed by identifier, never by page.
type TableID string

const (
	TableARRSummary   TableID = "G8"
	TableFuelStations TableID = "G9"
	TableIFCSBUG      TableID = "G10"
	TableIFCSummary   TableID = "5.1"
	TableLoanSummary  TableID = "5.3"
	TableGFABySBU     TableID = "5.7"
	TableGFAGenON     TableID = "5.8"
	TableMTBondInt    TableID = "5.17"
	TableIFCDetail    TableID = "5.22"
	TableDepSchedule  TableID = "5.27"
	TableLandValues   TableID = "5.28"
	TableGrants       TableID = "5.29"
	TableOMSummary    TableID = "5.37"
	TableEmployeeCost TableID = "5.38"
	TableRMExpenses   TableID = "5.39"
	TableAGExpenses   TableID = "5.40"
	TableIntangiblesA TableID = "5.48A"
	TableIntangiblesB TableID = "5.48B"
	TableNTIAccounts  TableID = "5.49"
	TableNTISummary   TableID = "5.51"
)

// CellKind is the parsed type of a raw cell
type CellKind string

const (
	CellText     CellKind = "text"
	CellNumeric  CellKind = "numeric"
	CellCurrency CellKind = "currency"
	CellPercent  CellKind = "percent"
)

// RawCell is a single extracted cell. Cells that fail expected-type parsing
// keep their raw text and are flagged, never dropped.
type RawCell struct {
	Text     string
	Kind     CellKind
	Value    float64
	HasValue bool
	Mismatch bool
}

// RawTable is the normalized grid extracted from one located table region.
// It is an intermediate product: consumed by the mapper, not retained in
// the report.
type RawTable struct {
	ID        TableID
	Title     string
	StartPage int
	EndPage   int
	Unit      string // monetary unit of the table, normalized to "crore"
	Rows      [][]RawCell
}

// RowText joins a row's raw cell text with single spaces.
func (t *RawTable) RowText(i int) string {
	if i < 0 || i >= len(t.Rows) {
		return ""
	}
	s := ""
	for _, c := range t.Rows[i] {
		if c.Text == "" {
			continue
		}
		if s != "" {
			s += " "
		}
		s += c.Text
	}
	return s
}

// FinancialRow holds the four standard columns of an ARR summary row.
// Pointers distinguish "absent" from zero.
type FinancialRow struct {
	Approved   *float64 `json:"arr_approved,omitempty"`
	Actuals    *float64 `json:"actuals,omitempty"`
	Claimed    *float64 `json:"tu_sought,omitempty"`
	Difference *float64 `json:"difference,omitempty"`
}

// VarianceExplanation is the narrative context the filing gives for a
// line item's variance, parsed from the section text near its table.
type VarianceExplanation struct {
	Reasons         []string `json:"reasons,omitempty"`
	ForceMajeure    bool     `json:"force_majeure_claimed"`
	SupportingDocs  []string `json:"supporting_docs,omitempty"`
	RegulatoryRefs  []string `json:"regulatory_refs,omitempty"`
	VarianceAmount  float64  `json:"variance_amount,omitempty"`
	VariancePercent float64  `json:"variance_percent,omitempty"`
}

// LineItemRecord is the canonical mapped form of one claimed line item.
// Immutable after mapping.
type LineItemRecord struct {
	Item       LineItem             `json:"item"`
	Claimed    float64              `json:"claimed"`
	Unit       string               `json:"unit"`
	Row        FinancialRow         `json:"row"`
	Components map[string]float64   `json:"components,omitempty"`
	Confidence Confidence           `json:"confidence"`
	Status     Status               `json:"status"`
	SkipReason string               `json:"skip_reason,omitempty"`
	Narrative  *VarianceExplanation `json:"narrative,omitempty"`
}

// ScheduleRecord is the canonical mapped form of one supporting schedule.
type ScheduleRecord struct {
	Schedule   Schedule           `json:"schedule"`
	Source     TableID            `json:"source_table"`
	Values     map[string]float64 `json:"values"`
	Confidence Confidence         `json:"confidence"`
	Status     Status             `json:"status"`
	SkipReason string             `json:"skip_reason,omitempty"`
}

// Value returns a named schedule value and whether it was extracted.
func (r *ScheduleRecord) Value(name string) (float64, bool) {
	if r == nil || r.Status != StatusComputed {
		return 0, false
	}
	v, ok := r.Values[name]
	return v, ok
}
