package sensor

import (
	"math"
	"testing"

	"github.com/talonworks/swarm-sim/pkg/agent"
	"github.com/talonworks/swarm-sim/pkg/geometry"
	"github.com/talonworks/swarm-sim/pkg/state"
)

const tolerance = 1e-6

func TestIdealSense(t *testing.T) {
	tests := []struct {
		name           string
		agentPosition  geometry.Vec3
		agentVelocity  geometry.Vec3
		targetPosition geometry.Vec3
		targetVelocity geometry.Vec3
		wantRange      float64
		wantAzimuth    float64
		wantElevation  float64
		wantRangeRate  float64
		wantAzRate     float64
		wantElRate     float64
	}{
		{
			name:           "boresight",
			agentVelocity:  geometry.Vec3{Y: 4},
			targetPosition: geometry.Vec3{Y: 4},
			targetVelocity: geometry.Vec3{X: 2, Y: 2, Z: -1},
			wantRange:      4,
			wantAzimuth:    0,
			wantElevation:  0,
			wantRangeRate:  -2,
			wantAzRate:     2.0 / 4,
			wantElRate:     -1.0 / 4,
		},
		{
			name:           "starboard",
			agentVelocity:  geometry.Vec3{Y: 1},
			targetPosition: geometry.Vec3{X: 5},
			targetVelocity: geometry.Vec3{X: 2, Y: 3, Z: -1},
			wantRange:      5,
			wantAzimuth:    math.Pi / 2,
			wantElevation:  0,
			wantRangeRate:  2,
			wantAzRate:     -2.0 / 5,
			wantElRate:     -1.0 / 5,
		},
		{
			name:           "above",
			agentVelocity:  geometry.Vec3{Y: 1},
			targetPosition: geometry.Vec3{Z: 5},
			targetVelocity: geometry.Vec3{Y: 2},
			wantRange:      5,
			wantAzimuth:    0,
			wantElevation:  math.Pi / 2,
			wantRangeRate:  0,
			wantAzRate:     0,
			wantElRate:     -1.0 / 5,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a := agent.NewModel(state.State{
				Position: test.agentPosition,
				Velocity: test.agentVelocity,
			})
			target := agent.NewModel(state.State{
				Position: test.targetPosition,
				Velocity: test.targetVelocity,
			})
			output := NewIdeal(a).Sense(target)

			checks := []struct {
				name string
				got  float64
				want float64
			}{
				{"range", output.Position.Range, test.wantRange},
				{"azimuth", output.Position.Azimuth, test.wantAzimuth},
				{"elevation", output.Position.Elevation, test.wantElevation},
				{"range rate", output.Velocity.Range, test.wantRangeRate},
				{"azimuth rate", output.Velocity.Azimuth, test.wantAzRate},
				{"elevation rate", output.Velocity.Elevation, test.wantElRate},
			}
			for _, check := range checks {
				if math.Abs(check.got-check.want) > tolerance {
					t.Errorf("%s = %v, want %v", check.name, check.got, check.want)
				}
			}
		})
	}
}

func TestIdealSenseCartesian(t *testing.T) {
	a := agent.NewModel(state.State{
		Position: geometry.Vec3{X: 1, Y: 2, Z: 3},
		Velocity: geometry.Vec3{Y: 1},
	})
	target := agent.NewModel(state.State{Position: geometry.Vec3{X: 4, Y: 6, Z: 3}})
	output := NewIdeal(a).SensePosition(target)

	want := geometry.Vec3{X: 3, Y: 4}
	if output.PositionCartesian.Sub(want).Norm() > tolerance {
		t.Errorf("relative position = %v, want %v", output.PositionCartesian, want)
	}
	if math.Abs(output.Position.Range-5) > tolerance {
		t.Errorf("range = %v, want 5", output.Position.Range)
	}
}
