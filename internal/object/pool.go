package object

import "time"

// Pool owns the live falling entities. Entities removed from the pool are
// not referenced anywhere else.
type Pool struct {
	entities []*FallingEntity
	screen   Screen
	rng      Rand
}

// NewPool creates an empty pool for the given world.
func NewPool(screen Screen, rng Rand) *Pool {
	if rng == nil {
		rng = DefaultRand()
	}
	return &Pool{
		screen: screen,
		rng:    rng,
	}
}

// Spawn adds a new entity of the given kind at a random x within lane.
func (p *Pool) Spawn(kind Kind, lane Range) *FallingEntity {
	x := p.rng.Float64()*lane.Width() + lane.Left
	e := NewFallingEntity(kind, x, p.rng)
	p.entities = append(p.entities, e)
	return e
}

// AdvanceAll moves every entity one tick and drops the ones that left the
// screen. The fall is a fixed per-tick step; delta is accepted so callers
// pass the frame time, but it does not scale the motion.
// Returns the number of entities dropped.
func (p *Pool) AdvanceAll(_ time.Duration) int {
	kept := p.entities[:0] // reuse backing array
	for _, e := range p.entities {
		e.Advance()
		if !e.OffScreen(p.screen.Height) {
			kept = append(kept, e)
		}
	}
	dropped := len(p.entities) - len(kept)
	clear(p.entities[len(kept):])
	p.entities = kept
	return dropped
}

// RemoveIf removes every entity for which fn returns true, preserving the
// order of the rest. fn is called once per entity in pool order.
func (p *Pool) RemoveIf(fn func(e *FallingEntity) bool) int {
	kept := p.entities[:0]
	for _, e := range p.entities {
		if !fn(e) {
			kept = append(kept, e)
		}
	}
	removed := len(p.entities) - len(kept)
	clear(p.entities[len(kept):])
	p.entities = kept
	return removed
}

// Entities returns the live entities in pool order.
// The slice must not be modified and is only valid until the next pool mutation.
func (p *Pool) Entities() []*FallingEntity {
	return p.entities
}

// Len returns the number of live entities.
func (p *Pool) Len() int {
	return len(p.entities)
}
