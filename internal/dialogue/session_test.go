package dialogue

import (
	"testing"

	"github.com/NathanVRyver/game-engine/internal/data"
)

func testTrees() *data.DialogueTable {
	t := data.NewDialogueTable()
	t.Register(&data.TreeDef{
		ID:    "greet",
		Start: "hello",
		Nodes: map[string]*data.NodeDef{
			"hello": {
				ID: "hello", Speaker: "Bob", Text: "Hi.",
				Options: []data.OptionDef{
					{Text: "Ask", Next: "deeper"},
					{Text: "Leave", Next: data.ExitNode},
					{Text: "Broken", Next: "no_such_node"},
				},
			},
			"deeper": {
				ID: "deeper", Speaker: "Bob", Text: "Well...",
				Options: []data.OptionDef{
					{Text: "Bye", Next: data.ExitNode, Action: data.Action{Kind: data.ActionSetFlag, Flag: "talked"}},
				},
			},
			"dead_end": {ID: "dead_end", Speaker: "Bob", Text: "..."},
		},
	})
	t.Register(&data.TreeDef{ID: "broken", Start: "missing", Nodes: map[string]*data.NodeDef{}})
	return t
}

func TestStartDialogue(t *testing.T) {
	s := NewSystem(testTrees())

	if s.Active() {
		t.Fatal("fresh system should be idle")
	}
	if !s.StartDialogue("greet") {
		t.Fatal("starting a known tree should succeed")
	}
	sess, ok := s.Session()
	if !ok || sess.NodeID != "hello" || sess.Selected != 0 {
		t.Fatalf("session should open at start node, got %+v", sess)
	}
}

func TestStartDialogueFailsOnMissingTreeOrStart(t *testing.T) {
	s := NewSystem(testTrees())
	if s.StartDialogue("nope") {
		t.Fatal("unknown tree should fail")
	}
	if s.StartDialogue("broken") {
		t.Fatal("tree with a missing start node should fail")
	}
	if s.Active() {
		t.Fatal("failed starts must not open a session")
	}
}

func TestOptionCursorWraps(t *testing.T) {
	s := NewSystem(testTrees())
	s.StartDialogue("greet")

	s.SelectPrevOption()
	sess, _ := s.Session()
	if sess.Selected != 2 {
		t.Fatalf("prev from 0 should wrap to 2, got %d", sess.Selected)
	}
	s.SelectNextOption()
	sess, _ = s.Session()
	if sess.Selected != 0 {
		t.Fatalf("next from last should wrap to 0, got %d", sess.Selected)
	}
}

func TestExecuteAdvancesAndResetsCursor(t *testing.T) {
	s := NewSystem(testTrees())
	s.StartDialogue("greet")
	s.SelectNextOption()
	s.SelectPrevOption() // back on "Ask"

	opt, ok := s.ExecuteSelectedOption()
	if !ok || opt.Next != "deeper" {
		t.Fatalf("expected advance to deeper, got %+v ok=%v", opt, ok)
	}
	sess, _ := s.Session()
	if sess.NodeID != "deeper" || sess.Selected != 0 {
		t.Fatalf("cursor should reset on advance, got %+v", sess)
	}
}

func TestExitOptionEndsSessionAndReturnsOption(t *testing.T) {
	s := NewSystem(testTrees())
	s.StartDialogue("greet")
	s.SelectNextOption() // "Leave"

	opt, ok := s.ExecuteSelectedOption()
	if !ok || opt.Text != "Leave" {
		t.Fatalf("exit option should still be returned, got %+v", opt)
	}
	if s.Active() {
		t.Fatal("exit should end the session")
	}
}

func TestDanglingTargetEndsSession(t *testing.T) {
	s := NewSystem(testTrees())
	s.StartDialogue("greet")
	s.SelectPrevOption() // "Broken"

	opt, ok := s.ExecuteSelectedOption()
	if !ok || opt.Text != "Broken" {
		t.Fatalf("dangling option should still be returned, got %+v", opt)
	}
	if s.Active() {
		t.Fatal("dangling target should end the session, not wedge it")
	}
}

func TestZeroOptionNodeIsSafe(t *testing.T) {
	s := NewSystem(testTrees())
	s.StartDialogue("greet")
	sess, _ := s.Session()
	sess.NodeID = "dead_end"
	s.session = &sess

	s.SelectNextOption() // must not divide by zero
	s.SelectPrevOption()
	if _, ok := s.ExecuteSelectedOption(); ok {
		t.Fatal("executing on a zero-option node should report false")
	}
	if !s.Active() {
		t.Fatal("a no-op execute must not end the session")
	}
}

func TestStartReplacesActiveSession(t *testing.T) {
	s := NewSystem(testTrees())
	s.StartDialogue("greet")
	s.SelectNextOption()

	s.StartDialogue("greet")
	sess, _ := s.Session()
	if sess.Selected != 0 || sess.NodeID != "hello" {
		t.Fatalf("restart should reset the session, got %+v", sess)
	}
}

func TestEndDialogue(t *testing.T) {
	s := NewSystem(testTrees())
	s.StartDialogue("greet")
	s.EndDialogue()
	if s.Active() {
		t.Fatal("EndDialogue should close the session")
	}
	s.EndDialogue() // idle end is harmless
}
