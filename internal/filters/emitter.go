package filters

// ChangeFunc receives every emitted criteria. Its return is not observed.
type ChangeFunc func(Criteria)

// Emitter turns the local snapshot into Criteria and hands it to the consumer.
type Emitter struct {
	limits   Limits
	onChange ChangeFunc
}

// NewEmitter builds an emitter. A nil callback turns emission into a no-op.
func NewEmitter(limits Limits, onChange ChangeFunc) *Emitter {
	return &Emitter{limits: limits, onChange: onChange}
}

// Assemble resolves the snapshot into canonical criteria.
func (e *Emitter) Assemble(snap Snapshot) Criteria {
	return Criteria{
		Categories:  cloneSet(snap.Categories),
		Brands:      cloneSet(snap.Brands),
		PriceRange:  snap.Price.Effective(e.limits),
		EngineSizes: cloneSet(snap.EngineSizes),
	}
}

// Deliver invokes the consumer callback synchronously.
func (e *Emitter) Deliver(c Criteria) {
	if e.onChange == nil {
		return
	}
	e.onChange(c)
}

// Emit assembles and delivers in one step.
func (e *Emitter) Emit(snap Snapshot) Criteria {
	c := e.Assemble(snap)
	e.Deliver(c)
	return c
}
