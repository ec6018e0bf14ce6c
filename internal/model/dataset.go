package model

// Dataset is the full mapped content of one filing: the ten claimed line
// items plus the supporting schedules backing them. Heuristics read from a
// Dataset and never from raw tables.
type Dataset struct {
	Items     map[LineItem]*LineItemRecord
	Schedules map[Schedule]*ScheduleRecord

	// MissingTables lists fingerprints the locator could not resolve.
	MissingTables []TableID
}

// Item returns the record for a line item when it was mapped successfully.
func (d *Dataset) Item(li LineItem) (*LineItemRecord, bool) {
	r, ok := d.Items[li]
	if !ok || r.Status != StatusComputed {
		return nil, false
	}
	return r, true
}

// ScheduleValue reads one named value from a supporting schedule.
func (d *Dataset) ScheduleValue(s Schedule, name string) (float64, bool) {
	r, ok := d.Schedules[s]
	if !ok {
		return 0, false
	}
	return r.Value(name)
}
