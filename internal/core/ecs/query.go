package ecs

// Each2 calls fn for every entity present in both stores. The smaller
// store drives the scan and the other is probed, so visit order is
// unspecified — callers that need creation order go through World.Each.
func Each2[A, B any](sa *PtrComponentStore[A], sb *PtrComponentStore[B], fn func(EntityID, *A, *B)) {
	if sb.Len() < sa.Len() {
		Each2(sb, sa, func(id EntityID, b *B, a *A) { fn(id, a, b) })
		return
	}
	for id, a := range sa.data {
		if b, ok := sb.data[id]; ok {
			fn(id, a, b)
		}
	}
}
