// Package dialogue runs tree-structured conversations. At most one session
// is ever in progress; the system stores option guards but never evaluates
// them — filtering against live flag state is the caller's job.
package dialogue

import "github.com/NathanVRyver/game-engine/internal/data"

// Session is the in-progress conversation: which tree, which node, and
// which option the cursor rests on.
type Session struct {
	TreeID   string
	NodeID   string
	Selected int
}

// System is the conversation state machine over the dialogue catalog.
type System struct {
	trees   *data.DialogueTable
	session *Session
}

func NewSystem(trees *data.DialogueTable) *System {
	return &System{trees: trees}
}

// Active reports whether a conversation is in progress.
func (s *System) Active() bool { return s.session != nil }

// Session returns a copy of the live session, or false when idle.
func (s *System) Session() (Session, bool) {
	if s.session == nil {
		return Session{}, false
	}
	return *s.session, true
}

// CurrentNode returns the node the session sits on, or nil when idle or
// when the session points at a node that no longer exists.
func (s *System) CurrentNode() *data.NodeDef {
	if s.session == nil {
		return nil
	}
	tree := s.trees.Get(s.session.TreeID)
	if tree == nil {
		return nil
	}
	return tree.Node(s.session.NodeID)
}

// StartDialogue opens a session at the tree's designated start node with
// the option cursor at 0. Fails if the tree or its start node is missing.
// Starting while a session is active replaces it.
func (s *System) StartDialogue(treeID string) bool {
	tree := s.trees.Get(treeID)
	if tree == nil {
		return false
	}
	if tree.Node(tree.Start) == nil {
		return false
	}
	s.session = &Session{TreeID: treeID, NodeID: tree.Start}
	return true
}

// SelectNextOption moves the cursor forward, wrapping around the current
// node's option count. Nodes with no options leave the cursor alone — the
// modulo is guarded, a zero-option node is reachable content.
func (s *System) SelectNextOption() {
	node := s.CurrentNode()
	if node == nil || len(node.Options) == 0 {
		return
	}
	s.session.Selected = (s.session.Selected + 1) % len(node.Options)
}

// SelectPrevOption moves the cursor backward with the same wrap rule.
func (s *System) SelectPrevOption() {
	node := s.CurrentNode()
	if node == nil || len(node.Options) == 0 {
		return
	}
	n := len(node.Options)
	s.session.Selected = (s.session.Selected - 1 + n) % n
}

// ExecuteSelectedOption commits the option under the cursor and returns it
// so the caller can apply its action exactly once. An option targeting the
// exit sentinel (or a node that does not exist) ends the session; any other
// target advances the session there with the cursor reset to 0. Returns
// false when idle or when the cursor is out of the node's option range.
func (s *System) ExecuteSelectedOption() (data.OptionDef, bool) {
	node := s.CurrentNode()
	if node == nil {
		return data.OptionDef{}, false
	}
	sel := s.session.Selected
	if sel < 0 || sel >= len(node.Options) {
		return data.OptionDef{}, false
	}
	opt := node.Options[sel]

	if opt.Next == data.ExitNode {
		s.session = nil
		return opt, true
	}
	tree := s.trees.Get(s.session.TreeID)
	if tree == nil || tree.Node(opt.Next) == nil {
		// Dangling target: end the conversation rather than wedge it.
		s.session = nil
		return opt, true
	}
	s.session.NodeID = opt.Next
	s.session.Selected = 0
	return opt, true
}

// EndDialogue force-closes any session.
func (s *System) EndDialogue() {
	s.session = nil
}
