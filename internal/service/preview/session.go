package preview

import (
	"errors"
	"sync"
)

// ErrNoSelection is returned when an update arrives with nothing selected.
var ErrNoSelection = errors.New("no element selected")

// Session is the host side of one live-editing exchange. It holds at most
// one selected-element descriptor; a new selection replaces the prior one.
// Updates mutate the local shadow copy and produce the message the client
// forwards into the sandbox.
type Session struct {
	mu       sync.Mutex
	selected *SelectedElement
}

func NewSession() *Session {
	return &Session{}
}

// HandleSandboxMessage validates and applies a message claimed to come from
// the rendered document.
func (s *Session) HandleSandboxMessage(data []byte) (*SandboxMessage, error) {
	msg, err := DecodeSandboxMessage(data)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch msg.Type {
	case TypeElementSelected:
		s.selected = msg.Selected
	case TypeClearSelection:
		s.selected = nil
	}

	return msg, nil
}

// Selected returns a copy of the current selection, or nil.
func (s *Session) Selected() *SelectedElement {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected == nil {
		return nil
	}

	copied := *s.selected
	copied.Styles = make(map[string]string, len(s.selected.Styles))
	for k, v := range s.selected.Styles {
		copied.Styles[k] = v
	}
	return &copied
}

// ApplyUpdate merges a sparse patch into the shadow copy and returns the
// UPDATE_ELEMENT message to forward into the sandbox. Styles merge key by
// key; className and text replace wholesale.
func (s *Session) ApplyUpdate(update *ElementUpdate) (*Envelope, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected == nil {
		return nil, ErrNoSelection
	}

	if update.ClassName != nil {
		s.selected.ClassName = *update.ClassName
	}
	if update.Text != nil {
		s.selected.Text = *update.Text
	}
	for k, v := range update.Styles {
		s.selected.Styles[k] = v
	}

	return NewUpdateElementMessage(update)
}

// Close drops local selection state and returns the CLEAR_SELECTION_REQUEST
// the client should forward so the sandbox removes its highlight.
func (s *Session) Close() *Envelope {
	s.mu.Lock()
	s.selected = nil
	s.mu.Unlock()

	return NewClearSelectionRequest()
}
