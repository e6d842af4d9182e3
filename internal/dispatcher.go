package internal

// invocation is one queued handler call, drained after every firing
// descriptor has been resolved so a handler cannot perturb the plan mid-cycle.
type invocation struct {
	desc  *Descriptor
	field string
}

// dispatch fires the descriptors whose watch set intersects the changed set,
// in declaration order. A niladic descriptor fires once per cycle however
// many of its fields changed; a field-name descriptor fires once per distinct
// changed field it watches, in its declared field order. Non-invocable
// descriptors are skipped.
func (e *Engine) dispatch(obj any, descs []*Descriptor, changed []string) {
	changedSet := make(map[string]bool, len(changed))
	for _, f := range changed {
		changedSet[f] = true
	}

	var queue []invocation
	for _, d := range descs {
		if !d.Invocable() || !d.watchesAny(changedSet) {
			continue
		}

		switch d.Arity() {
		case ArityNiladic:
			queue = append(queue, invocation{desc: d})
		case ArityFieldName:
			for _, f := range d.Fields {
				if changedSet[f] {
					queue = append(queue, invocation{desc: d, field: f})
				}
			}
		}
	}

	for _, inv := range queue {
		inv.desc.Call(obj, inv.field)
		e.metrics.IncrementCounter("fieldwatch.invocations", map[string]string{"method": inv.desc.Method})
	}
}
