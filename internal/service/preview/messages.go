package preview

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Message types crossing the sandbox boundary. The set is closed: anything
// else coming out of the rendered document is dropped. The document is
// generated by an external model and must be treated as hostile, including
// attempts to forge ELEMENT_SELECTED with junk payloads.
const (
	TypeElementSelected       = "ELEMENT_SELECTED"
	TypeClearSelection        = "CLEAR_SELECTION"
	TypeUpdateElement         = "UPDATE_ELEMENT"
	TypeClearSelectionRequest = "CLEAR_SELECTION_REQUEST"
)

var (
	// ErrUnknownMessage is returned for message types outside the schema.
	ErrUnknownMessage = errors.New("unknown message type")

	// ErrMalformedMessage is returned when a known type carries a payload
	// that does not match its schema.
	ErrMalformedMessage = errors.New("malformed message")
)

// Payload size guards. Selected text beyond this is useless for the editing
// panel and a cheap way for a hostile page to bloat host state.
const (
	maxTextLength  = 4096
	maxClassLength = 2048
	maxTagLength   = 64
	maxStyleKeys   = 32
	maxStyleValue  = 512
)

// Envelope is the wire shape of every bridge message.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// SelectedElement describes the element the visitor clicked inside the
// sandbox: tag, class attribute, text content and a fixed set of inspected
// style properties.
type SelectedElement struct {
	TagName   string            `json:"tagName"`
	ClassName string            `json:"className"`
	Text      string            `json:"text"`
	Styles    map[string]string `json:"styles"`
}

// ElementUpdate is a sparse patch for the selected element. Only supplied
// keys apply: ClassName and Text replace wholesale, Styles merge key-by-key
// into the element's inline style.
type ElementUpdate struct {
	ClassName *string           `json:"className,omitempty"`
	Text      *string           `json:"text,omitempty"`
	Styles    map[string]string `json:"styles,omitempty"`
}

// SandboxMessage is a validated message received from the sandbox.
type SandboxMessage struct {
	Type     string
	Selected *SelectedElement // set only for ELEMENT_SELECTED
}

// DecodeSandboxMessage parses and validates a message claimed to come from
// the rendered document. Unknown types and malformed payloads are rejected,
// never partially trusted.
func DecodeSandboxMessage(data []byte) (*SandboxMessage, error) {
	var env Envelope
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	switch env.Type {
	case TypeElementSelected:
		sel, err := decodeSelectedElement(env.Payload)
		if err != nil {
			return nil, err
		}
		return &SandboxMessage{Type: TypeElementSelected, Selected: sel}, nil

	case TypeClearSelection:
		return &SandboxMessage{Type: TypeClearSelection}, nil

	case TypeUpdateElement, TypeClearSelectionRequest:
		// Host-to-sandbox types must never arrive from the sandbox side.
		return nil, fmt.Errorf("%w: %q is host-originated", ErrUnknownMessage, env.Type)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, env.Type)
	}
}

func decodeSelectedElement(payload json.RawMessage) (*SelectedElement, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: missing payload", ErrMalformedMessage)
	}

	var sel SelectedElement
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sel); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	if sel.TagName == "" || len(sel.TagName) > maxTagLength {
		return nil, fmt.Errorf("%w: bad tagName", ErrMalformedMessage)
	}
	if len(sel.ClassName) > maxClassLength {
		return nil, fmt.Errorf("%w: className too long", ErrMalformedMessage)
	}
	if len(sel.Text) > maxTextLength {
		sel.Text = sel.Text[:maxTextLength]
	}
	if len(sel.Styles) > maxStyleKeys {
		return nil, fmt.Errorf("%w: too many style keys", ErrMalformedMessage)
	}
	for k, v := range sel.Styles {
		if k == "" || len(k) > maxTagLength || len(v) > maxStyleValue {
			return nil, fmt.Errorf("%w: bad style entry", ErrMalformedMessage)
		}
	}
	if sel.Styles == nil {
		sel.Styles = map[string]string{}
	}

	return &sel, nil
}

// NewUpdateElementMessage builds the host-to-sandbox patch message.
func NewUpdateElementMessage(update *ElementUpdate) (*Envelope, error) {
	payload, err := json.Marshal(update)
	if err != nil {
		return nil, fmt.Errorf("encode update: %w", err)
	}
	return &Envelope{Type: TypeUpdateElement, Payload: payload}, nil
}

// NewClearSelectionRequest builds the host-to-sandbox deselect message.
func NewClearSelectionRequest() *Envelope {
	return &Envelope{Type: TypeClearSelectionRequest}
}
