package recipe

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/steps"
)

// fittedVersion tags the serialized format of a fitted recipe.
const fittedVersion = 1

// stepEnvelope wraps one fitted step with its kind tag so the decoder
// can pick the concrete state type.
type stepEnvelope struct {
	Kind  string          `json:"kind"`
	State json.RawMessage `json:"state"`
}

type fittedJSON struct {
	Version int                    `json:"version"`
	Outcome string                 `json:"outcome"`
	Roles   map[string]domain.Role `json:"roles"`
	Steps   []stepEnvelope         `json:"steps"`
}

// MarshalJSON serializes the snapshot as a versioned envelope with one
// kind-tagged entry per fitted step.
func (f *Fitted) MarshalJSON() ([]byte, error) {
	out := fittedJSON{
		Version: fittedVersion,
		Outcome: f.roles.Outcome,
		Roles:   f.roles.Map(),
		Steps:   make([]stepEnvelope, len(f.steps)),
	}
	for i, fs := range f.steps {
		state, err := json.Marshal(fs)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, fs.Kind(), err)
		}
		out.Steps[i] = stepEnvelope{Kind: fs.Kind(), State: state}
	}
	return json.Marshal(out)
}

// UnmarshalJSON rebuilds a snapshot from its envelope form.
func (f *Fitted) UnmarshalJSON(data []byte) error {
	var raw fittedJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Version != fittedVersion {
		return fmt.Errorf("fitted recipe: unsupported version %d", raw.Version)
	}
	decoded := make([]steps.FittedStep, len(raw.Steps))
	for i, env := range raw.Steps {
		fs, err := decodeFittedStep(env)
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		decoded[i] = fs
	}
	f.roles = domain.FromMap(raw.Outcome, raw.Roles)
	f.steps = decoded
	return nil
}

func decodeFittedStep(env stepEnvelope) (steps.FittedStep, error) {
	var fs steps.FittedStep
	switch env.Kind {
	case steps.KindLog:
		fs = &steps.FittedLog{}
	case steps.KindOther:
		fs = &steps.FittedOther{}
	case steps.KindDummy:
		fs = &steps.FittedDummy{}
	case steps.KindInteract:
		fs = &steps.FittedInteract{}
	case steps.KindSpline:
		fs = &steps.FittedNaturalSpline{}
	case steps.KindCenter:
		fs = &steps.FittedCenter{}
	case steps.KindScale:
		fs = &steps.FittedScale{}
	default:
		return nil, fmt.Errorf("unknown step kind %q", env.Kind)
	}
	if err := json.Unmarshal(env.State, fs); err != nil {
		return nil, fmt.Errorf("decode %s state: %w", env.Kind, err)
	}
	return fs, nil
}
