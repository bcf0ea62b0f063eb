package ecs

import "github.com/milk9111/lurker/ecs/component"

// candidates returns the entities of the smallest store among ids, or nil if
// any store is missing. Callers still check membership in the other stores.
func candidates(w *World, ids ...component.ComponentID) []Entity {
	var smallest *SparseSet
	for _, id := range ids {
		s := w.store(id, false)
		if s.Len() == 0 {
			return nil
		}
		if smallest == nil || s.Len() < smallest.Len() {
			smallest = s
		}
	}
	return smallest.Entities()
}
