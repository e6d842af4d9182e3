package internal

// Detector compares fresh field readings against stored baselines.
// Detection is edge-triggered: a reported change immediately becomes the new
// baseline, so a value that changes and later changes back reports twice.
type Detector struct {
	store *SnapshotStore
}

func NewDetector(store *SnapshotStore) *Detector {
	return &Detector{store: store}
}

// Detect returns the names of obj's fields whose fresh value differs from
// the baseline, in reading order, overwriting the baseline as it goes.
// First observation of an object establishes the baseline and reports
// nothing, whatever the values are. A field appearing for the first time on
// an already-observed object is likewise baselined silently.
func (d *Detector) Detect(obj any, fresh []FieldValue) []string {
	if !d.store.Has(obj) {
		d.store.Init(obj, fresh)
		return nil
	}

	snap := d.store.snapshot(obj)

	var changed []string
	for _, fv := range fresh {
		next := capture(fv.Value)

		prev, ok := snap[fv.Name]
		if !ok {
			snap[fv.Name] = next
			continue
		}

		if !prev.equal(next) {
			changed = append(changed, fv.Name)
			snap[fv.Name] = next
		}
	}

	return changed
}
