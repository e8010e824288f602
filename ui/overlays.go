package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayEnergyBars OverlayID = "energy_bars"
	OverlayCarcasses  OverlayID = "carcasses"
	OverlayGrid       OverlayID = "grid"
	OverlayPerf       OverlayID = "perf"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID       OverlayID
	Name     string
	Key      int32  // 0 = no key
	KeyLabel string // e.g. "E"
	Default  bool
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	byID    map[OverlayID]OverlayDescriptor
	enabled map[OverlayID]bool
	order   []OverlayID // insertion order for display
}

// NewOverlayRegistry creates a registry with the standard overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.Register(OverlayDescriptor{ID: OverlayEnergyBars, Name: "Energy bars", Key: rl.KeyE, KeyLabel: "E", Default: true})
	reg.Register(OverlayDescriptor{ID: OverlayCarcasses, Name: "Dead birds", Key: rl.KeyX, KeyLabel: "X", Default: true})
	reg.Register(OverlayDescriptor{ID: OverlayGrid, Name: "Spatial grid", Key: rl.KeyG, KeyLabel: "G"})
	reg.Register(OverlayDescriptor{ID: OverlayPerf, Name: "Perf", Key: rl.KeyP, KeyLabel: "P"})
	return reg
}

// Register adds an overlay. Registering an existing ID replaces its
// descriptor and keeps its position.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	if _, ok := r.byID[desc.ID]; !ok {
		r.order = append(r.order, desc.ID)
	}
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle flips an overlay and returns its new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// IsEnabled reports whether an overlay is on.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns descriptors in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	out := make([]OverlayDescriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// HandleKeyPress toggles the overlay bound to key.
// Returns the overlay, its new state and whether any overlay matched.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, id := range r.order {
		if r.byID[id].Key == key {
			return id, r.Toggle(id), true
		}
	}
	return "", false, false
}

// HandleInput checks every bound key against raylib's key state.
func (r *OverlayRegistry) HandleInput() {
	for _, id := range r.order {
		if key := r.byID[id].Key; key != 0 && rl.IsKeyPressed(key) {
			r.Toggle(id)
		}
	}
}
