package ecs

import "testing"

type testComp struct{ val int }

func TestCreateEntityAssignsSequentialIDs(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity(KindPlayer, "a")
	b := w.CreateEntity(KindNPC, "b")
	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("expected IDs 1,2 got %d,%d", a.ID, b.ID)
	}
	if !w.Alive(a.ID) || !w.Alive(b.ID) {
		t.Fatal("created entities should be alive")
	}
}

func TestEntityIDsNeverReused(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity(KindNPC, "a")
	if !w.RemoveEntity(a.ID) {
		t.Fatal("remove of live entity should succeed")
	}
	b := w.CreateEntity(KindNPC, "b")
	if b.ID == a.ID {
		t.Fatalf("ID %d was reused after removal", a.ID)
	}
	if w.Alive(a.ID) {
		t.Fatal("removed entity still alive")
	}
}

func TestRemoveEntityClearsComponents(t *testing.T) {
	w := NewWorld()
	store := NewPtrComponentStore[testComp]()
	w.Registry().Register(store)

	e := w.CreateEntity(KindItem, "potion")
	store.Set(e.ID, &testComp{val: 7})

	w.RemoveEntity(e.ID)
	if store.Has(e.ID) {
		t.Fatal("component should be gone after entity removal")
	}
}

func TestRemoveMissingEntity(t *testing.T) {
	w := NewWorld()
	if w.RemoveEntity(99) {
		t.Fatal("removing a never-created entity should report false")
	}
}

func TestSetReplacesExistingComponent(t *testing.T) {
	store := NewPtrComponentStore[testComp]()
	store.Set(1, &testComp{val: 1})
	store.Set(1, &testComp{val: 2})

	if store.Len() != 1 {
		t.Fatalf("expected 1 component, got %d", store.Len())
	}
	c, ok := store.Get(1)
	if !ok || c.val != 2 {
		t.Fatalf("expected replaced value 2, got %+v ok=%v", c, ok)
	}
}

func TestTakeRemovesComponent(t *testing.T) {
	store := NewPtrComponentStore[testComp]()
	store.Set(5, &testComp{val: 9})

	c, ok := store.Take(5)
	if !ok || c.val != 9 {
		t.Fatalf("expected taken component val=9, got %+v ok=%v", c, ok)
	}
	if store.Has(5) {
		t.Fatal("component should be gone after Take")
	}
	if _, ok := store.Take(5); ok {
		t.Fatal("second Take should report false")
	}
}

func TestEachVisitsInCreationOrder(t *testing.T) {
	w := NewWorld()
	w.CreateEntity(KindNPC, "first")
	second := w.CreateEntity(KindNPC, "second")
	w.CreateEntity(KindNPC, "third")
	w.RemoveEntity(second.ID)
	w.CreateEntity(KindNPC, "fourth")

	var names []string
	w.Each(func(e *Entity) { names = append(names, e.Name) })

	want := []string{"first", "third", "fourth"}
	if len(names) != len(want) {
		t.Fatalf("expected %d entities, got %v", len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("creation order broken: got %v want %v", names, want)
		}
	}
}

func TestDestroyQueueDefersRemoval(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity(KindNPC, "doomed")
	w.MarkForDestruction(e.ID)

	if !w.Alive(e.ID) {
		t.Fatal("entity should stay alive until the queue flushes")
	}
	w.FlushDestroyQueue()
	if w.Alive(e.ID) {
		t.Fatal("entity should be gone after flush")
	}
	// flushing again must not panic on the already-removed ID
	w.MarkForDestruction(e.ID)
	w.FlushDestroyQueue()
}
