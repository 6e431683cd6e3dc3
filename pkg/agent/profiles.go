package agent

import (
	"errors"
	"fmt"
)

// ErrUnknownAgentType reports an agent type tag with no registered profile.
var ErrUnknownAgentType = errors.New("unknown agent type")

// Profile is the built-in definition of an agent type.
type Profile struct {
	Kind   Kind
	Static StaticConfig
}

// Built-in agent type profiles.
var profiles = map[string]Profile{
	"micromissile": {
		Kind: KindInterceptor,
		Static: StaticConfig{
			Mass:                     0.37,
			CrossSectionalArea:       1.5e-3,
			DragCoefficient:          0.7,
			LiftDragRatio:            5,
			BoostAcceleration:        350,
			BoostTime:                0.3,
			MaxReferenceAcceleration: 300,
			ReferenceSpeed:           1000,
			HitRadius:                1,
		},
	},
	"hydra70": {
		Kind: KindInterceptor,
		Static: StaticConfig{
			Mass:                     15.8,
			CrossSectionalArea:       3.85e-3,
			DragCoefficient:          0.4,
			LiftDragRatio:            5,
			BoostAcceleration:        100,
			BoostTime:                1,
			MaxReferenceAcceleration: 0,
			ReferenceSpeed:           1000,
		},
	},
	"drone": {
		Kind: KindThreat,
		Static: StaticConfig{
			Mass:               50,
			CrossSectionalArea: 0.1,
			DragCoefficient:    0.6,
			LiftDragRatio:      5,
			KillProbability:    0.9,
		},
	},
	"missile": {
		Kind: KindThreat,
		Static: StaticConfig{
			Mass:               110,
			CrossSectionalArea: 3.14e-2,
			DragCoefficient:    0.5,
			LiftDragRatio:      5,
			KillProbability:    0.6,
		},
	},
}

// ProfileFor looks up the built-in profile of the given agent type tag.
func ProfileFor(typeTag string) (Profile, error) {
	profile, ok := profiles[typeTag]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownAgentType, typeTag)
	}
	return profile, nil
}

// ProfileNames returns the known agent type tags.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	return names
}
