package lighting

import (
	gomath "math"
	"testing"
)

func TestDirection(t *testing.T) {
	tests := []struct {
		name      string
		longitude float32
		latitude  float32
		want      [3]float32
	}{
		{"straight ahead", 0, 0, [3]float32{0, 0, 1}},
		{"overhead", 0, 90, [3]float32{0, 1, 0}},
		{"east horizon", 90, 0, [3]float32{1, 0, 0}},
		{"west horizon", -90, 0, [3]float32{-1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Direction(tt.longitude, tt.latitude)
			for i := 0; i < 3; i++ {
				if gomath.Abs(float64(got[i]-tt.want[i])) > 1e-6 {
					t.Errorf("Direction(%v, %v) = %v, want %v", tt.longitude, tt.latitude, got, tt.want)
					break
				}
			}
		})
	}
}

func TestDirectionUnitLength(t *testing.T) {
	for _, angles := range [][2]float32{{35, 50}, {-120, 15}, {170, 30}, {213, -42}} {
		d := Direction(angles[0], angles[1])
		length := gomath.Sqrt(float64(d[0]*d[0] + d[1]*d[1] + d[2]*d[2]))
		if gomath.Abs(length-1) > 1e-6 {
			t.Errorf("Direction(%v, %v) length = %v, want 1", angles[0], angles[1], length)
		}
	}
}

func TestDefaultRig(t *testing.T) {
	rig := DefaultRig()

	if rig.Ambient == ([3]float32{}) {
		t.Error("Ambient is zero")
	}
	for i, light := range rig.Lights {
		if light.Intensity <= 0 {
			t.Errorf("light %d intensity = %v, want > 0", i, light.Intensity)
		}
		length := gomath.Sqrt(float64(light.Direction[0]*light.Direction[0] +
			light.Direction[1]*light.Direction[1] +
			light.Direction[2]*light.Direction[2]))
		if gomath.Abs(length-1) > 1e-5 {
			t.Errorf("light %d direction not normalized: %v", i, light.Direction)
		}
	}

	// Key light dominates the rig.
	if rig.Lights[0].Intensity <= rig.Lights[1].Intensity || rig.Lights[0].Intensity <= rig.Lights[2].Intensity {
		t.Errorf("key light %v is not the strongest", rig.Lights[0].Intensity)
	}
}

func TestDefaultRigIsFresh(t *testing.T) {
	a := DefaultRig()
	b := DefaultRig()

	if a == b {
		t.Fatal("DefaultRig returned the same instance twice")
	}

	a.Lights[0].Intensity = 99
	a.Ambient = [3]float32{1, 0, 0}

	if b.Lights[0].Intensity == 99 || b.Ambient == ([3]float32{1, 0, 0}) {
		t.Error("mutating one rig leaked into another")
	}
}

func TestUploadLayout(t *testing.T) {
	rig := DefaultRig()

	dirs := rig.Directions()
	if len(dirs) != MaxDirectionalLights*3 {
		t.Fatalf("Directions length = %d, want %d", len(dirs), MaxDirectionalLights*3)
	}
	colors := rig.Colors()
	if len(colors) != MaxDirectionalLights*3 {
		t.Fatalf("Colors length = %d, want %d", len(colors), MaxDirectionalLights*3)
	}
	intensities := rig.Intensities()
	if len(intensities) != MaxDirectionalLights {
		t.Fatalf("Intensities length = %d, want %d", len(intensities), MaxDirectionalLights)
	}

	for i, light := range rig.Lights {
		for a := 0; a < 3; a++ {
			if dirs[i*3+a] != light.Direction[a] {
				t.Errorf("Directions[%d] = %v, want %v", i*3+a, dirs[i*3+a], light.Direction[a])
			}
			if colors[i*3+a] != light.Color[a] {
				t.Errorf("Colors[%d] = %v, want %v", i*3+a, colors[i*3+a], light.Color[a])
			}
		}
		if intensities[i] != light.Intensity {
			t.Errorf("Intensities[%d] = %v, want %v", i, intensities[i], light.Intensity)
		}
	}
}
