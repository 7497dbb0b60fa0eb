package configurator

import (
	"encoding/json"
	"fmt"

	"github.com/phenrril/resinwood/internal/domain"
)

// Action is one user intent. Reduce applies it to a state.
type Action interface {
	Kind() string
	apply(m *Machine, s State) (State, error)
}

type SetStepAction struct{ Step Step }
type NextAction struct{}
type PrevAction struct{}
type SelectTemplateAction struct{ TemplateID string }
type SelectSizeAction struct{ SizeID string }
type SetResinRatioAction struct{ Ratio domain.ResinRatio }
type SetResinColorAction struct{ ColorID string }
type SetResinTransparencyAction struct{ Transparency domain.ResinTransparency }
type SetPersonalizationAction struct{ Personalization *domain.Personalization }
type SetConfirmedVariationAction struct{ Confirmed bool }
type ResetAction struct{}

func (SetStepAction) Kind() string               { return "set_step" }
func (NextAction) Kind() string                  { return "next" }
func (PrevAction) Kind() string                  { return "prev" }
func (SelectTemplateAction) Kind() string        { return "select_template" }
func (SelectSizeAction) Kind() string            { return "select_size" }
func (SetResinRatioAction) Kind() string         { return "set_resin_ratio" }
func (SetResinColorAction) Kind() string         { return "set_resin_color" }
func (SetResinTransparencyAction) Kind() string  { return "set_resin_transparency" }
func (SetPersonalizationAction) Kind() string    { return "set_personalization" }
func (SetConfirmedVariationAction) Kind() string { return "set_confirmed_variation" }
func (ResetAction) Kind() string                 { return "reset" }

func (a SetStepAction) apply(m *Machine, s State) (State, error) { return m.SetStep(s, a.Step) }
func (NextAction) apply(m *Machine, s State) (State, error)      { return m.Next(s) }
func (PrevAction) apply(m *Machine, s State) (State, error)      { return m.Prev(s) }
func (a SelectTemplateAction) apply(m *Machine, s State) (State, error) {
	return m.SelectTemplateByID(s, a.TemplateID)
}
func (a SelectSizeAction) apply(m *Machine, s State) (State, error) {
	return m.SelectSize(s, a.SizeID)
}
func (a SetResinRatioAction) apply(m *Machine, s State) (State, error) {
	return m.SetResinRatio(s, a.Ratio)
}
func (a SetResinColorAction) apply(m *Machine, s State) (State, error) {
	return m.SetResinColor(s, a.ColorID)
}
func (a SetResinTransparencyAction) apply(m *Machine, s State) (State, error) {
	return m.SetResinTransparency(s, a.Transparency)
}
func (a SetPersonalizationAction) apply(m *Machine, s State) (State, error) {
	return m.SetPersonalization(s, a.Personalization)
}
func (a SetConfirmedVariationAction) apply(m *Machine, s State) (State, error) {
	return m.SetConfirmedVariation(s, a.Confirmed)
}
func (ResetAction) apply(m *Machine, s State) (State, error) { return m.Reset(s) }

// Reduce applies a to s.
func (m *Machine) Reduce(s State, a Action) (State, error) {
	if a == nil {
		return s, ErrUnknownAction
	}
	return a.apply(m, s)
}

// ReduceAll applies actions in order and stops at the first rejection,
// returning the last accepted state.
func (m *Machine) ReduceAll(s State, actions ...Action) (State, error) {
	for _, a := range actions {
		next, err := m.Reduce(s, a)
		if err != nil {
			return s, fmt.Errorf("%s: %w", a.Kind(), err)
		}
		s = next
	}
	return s, nil
}

// envelope is the wire form of an action:
//
//	{"type": "set_resin_color", "payload": "rose-gold"}
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// DecodeAction parses the wire form of an action.
func DecodeAction(data []byte) (Action, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}
	return decodePayload(env.Type, env.Payload)
}

// DecodeActions accepts either one action object or an array of them.
func DecodeActions(data []byte) ([]Action, error) {
	var list []envelope
	if err := json.Unmarshal(data, &list); err != nil {
		a, err := DecodeAction(data)
		if err != nil {
			return nil, err
		}
		return []Action{a}, nil
	}
	out := make([]Action, 0, len(list))
	for _, env := range list {
		a, err := decodePayload(env.Type, env.Payload)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func decodePayload(kind string, raw json.RawMessage) (Action, error) {
	unmarshal := func(v any) error {
		if len(raw) == 0 {
			return fmt.Errorf("%s: missing payload", kind)
		}
		if err := json.Unmarshal(raw, v); err != nil {
			return fmt.Errorf("%s payload: %w", kind, err)
		}
		return nil
	}
	switch kind {
	case "set_step":
		var n int
		if err := unmarshal(&n); err != nil {
			return nil, err
		}
		return SetStepAction{Step: Step(n)}, nil
	case "next":
		return NextAction{}, nil
	case "prev":
		return PrevAction{}, nil
	case "select_template":
		var id string
		if err := unmarshal(&id); err != nil {
			return nil, err
		}
		return SelectTemplateAction{TemplateID: id}, nil
	case "select_size":
		var id string
		if err := unmarshal(&id); err != nil {
			return nil, err
		}
		return SelectSizeAction{SizeID: id}, nil
	case "set_resin_ratio":
		var r domain.ResinRatio
		if err := unmarshal(&r); err != nil {
			return nil, err
		}
		return SetResinRatioAction{Ratio: r}, nil
	case "set_resin_color":
		var id string
		if err := unmarshal(&id); err != nil {
			return nil, err
		}
		return SetResinColorAction{ColorID: id}, nil
	case "set_resin_transparency":
		var t domain.ResinTransparency
		if err := unmarshal(&t); err != nil {
			return nil, err
		}
		return SetResinTransparencyAction{Transparency: t}, nil
	case "set_personalization":
		// null clears
		var p *domain.Personalization
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &p); err != nil {
				return nil, fmt.Errorf("%s payload: %w", kind, err)
			}
		}
		return SetPersonalizationAction{Personalization: p}, nil
	case "set_confirmed_variation":
		var b bool
		if err := unmarshal(&b); err != nil {
			return nil, err
		}
		return SetConfirmedVariationAction{Confirmed: b}, nil
	case "reset":
		return ResetAction{}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownAction, kind)
}
