package dashboard

import (
	"fmt"
	"strings"
)

// ActiveView identifies the role-view on screen.
type ActiveView int

const (
	// ViewUser is the individual driver view and the default.
	ViewUser ActiveView = iota
	// ViewCompany is the aggregate insurer view.
	ViewCompany
)

// Views lists every role-view in tab order.
var Views = []ActiveView{ViewUser, ViewCompany}

// String returns the wire name of the view.
func (v ActiveView) String() string {
	switch v {
	case ViewUser:
		return "user"
	case ViewCompany:
		return "company"
	default:
		return fmt.Sprintf("view(%d)", int(v))
	}
}

// Title returns the tab caption of the view.
func (v ActiveView) Title() string {
	switch v {
	case ViewCompany:
		return "Company Dashboard"
	default:
		return "User Dashboard"
	}
}

// Valid reports whether v is a known view.
func (v ActiveView) Valid() bool {
	return v == ViewUser || v == ViewCompany
}

// ParseView converts a wire name into an ActiveView.
func ParseView(raw string) (ActiveView, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "user":
		return ViewUser, nil
	case "company":
		return ViewCompany, nil
	default:
		return ViewUser, fmt.Errorf("%w: %q", ErrUnknownView, raw)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (v ActiveView) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, ErrUnknownView
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *ActiveView) UnmarshalText(text []byte) error {
	parsed, err := ParseView(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// RotationState is the position of the insight feed.
type RotationState struct {
	CurrentIndex int `json:"current_index"`
}

// RevealState is the delayed score indicator.
type RevealState struct {
	Revealed bool `json:"revealed"`
	Value    int  `json:"value"`
}
