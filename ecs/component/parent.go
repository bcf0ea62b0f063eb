package component

// Parent links a child entity to its owner. Colliders on children count as
// their owner's for sight checks.
type Parent struct {
	Entity uint64
}

var ParentComponent = NewComponentKind[Parent]()
