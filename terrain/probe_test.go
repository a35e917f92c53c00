package terrain

import (
	"math"
	"testing"

	"github.com/automoto/gaitkit/assets"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

var (
	down    = mgl64.Vec3{0, -1, 0}
	forward = mgl64.Vec3{0, 0, -1}
)

func loadProving(t *testing.T) *Probe {
	t.Helper()
	level, err := assets.LoadLevel("proving")
	if err != nil {
		t.Fatalf("load level: %v", err)
	}
	p, err := Load(donburi.NewWorld(), level)
	if err != nil {
		t.Fatalf("load terrain: %v", err)
	}
	return p
}

// at returns the world position of the hips above map column x.
func at(p *Probe, mapX, height float64) mgl64.Vec3 {
	ground := p.ToWorld(mapX, p.space.OriginY)
	return mgl64.Vec3{0, height, ground.Z()}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestNewProbeWithoutSpace(t *testing.T) {
	if _, err := NewProbe(donburi.NewWorld()); err != ErrNoSpace {
		t.Fatalf("err = %v, want ErrNoSpace", err)
	}
}

func TestGroundBelowSpawn(t *testing.T) {
	p := loadProving(t)
	d, hit := p.Raycast(mgl64.Vec3{0, 1.35, 0}, down, 50)
	if !hit || !near(d, 1.35) {
		t.Fatalf("ground = %v (hit %v), want 1.35", d, hit)
	}
}

func TestGroundOnStepAndRamp(t *testing.T) {
	p := loadProving(t)

	d, hit := p.Raycast(at(p, 500, 1.35), down, 50)
	if !hit || !near(d, 0.85) {
		t.Fatalf("step = %v (hit %v), want 0.85", d, hit)
	}

	// Halfway up the rising ramp the surface is a quarter tile above ground.
	d, hit = p.Raycast(at(p, 440, 1.35), down, 50)
	if !hit || !near(d, 1.1) {
		t.Fatalf("ramp = %v (hit %v), want 1.1", d, hit)
	}
}

func TestPitIsAMiss(t *testing.T) {
	p := loadProving(t)
	if d, hit := p.Raycast(at(p, 736, 1.35), down, 50); hit {
		t.Fatalf("pit reported ground at %v", d)
	}
}

func TestWallAhead(t *testing.T) {
	p := loadProving(t)
	origin := at(p, 880, 1.35)

	d, hit := p.Raycast(origin, forward, 3)
	if !hit || !near(d, 0.5) {
		t.Fatalf("wall = %v (hit %v), want 0.5", d, hit)
	}
	if _, hit := p.Raycast(origin, forward.Mul(-1), 3); hit {
		t.Fatalf("nothing should be behind")
	}
	if _, hit := p.Raycast(at(p, 700, 1.35), forward, 3); hit {
		t.Fatalf("wall beyond max distance reported")
	}
}

func TestSidewaysRaysMiss(t *testing.T) {
	p := loadProving(t)
	if _, hit := p.Raycast(mgl64.Vec3{0, 1.35, 0}, mgl64.Vec3{1, 0, 0}, 50); hit {
		t.Fatalf("lateral ray hit")
	}
	if _, hit := p.Raycast(mgl64.Vec3{0, 1.35, 0}, mgl64.Vec3{0, 1, 0}, 50); hit {
		t.Fatalf("upward ray hit")
	}
}

func TestSpawnPoints(t *testing.T) {
	level, err := assets.LoadLevel("proving")
	if err != nil {
		t.Fatal(err)
	}
	p, err := Load(donburi.NewWorld(), level)
	if err != nil {
		t.Fatal(err)
	}

	origin, ok := p.Spawn(level, 0)
	if !ok || origin.Len() != 0 {
		t.Fatalf("spawn 0 = %v, want origin", origin)
	}
	ledge, ok := p.Spawn(level, 1)
	if !ok || !near(ledge.Y(), 0.5) || !near(ledge.Z(), -13) {
		t.Fatalf("spawn 1 = %v", ledge)
	}
	if _, ok := p.Spawn(level, 7); ok {
		t.Fatalf("unknown spawn found")
	}
}
