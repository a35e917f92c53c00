package leveldata

import (
	"os"
	"testing"
	"testing/fstest"
)

func loadProving(t *testing.T) *CollisionData {
	t.Helper()
	data, err := LoadCollisionData(os.DirFS("../../assets/levels"), "proving.tmx")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return data
}

func TestSolidRunsAreMerged(t *testing.T) {
	data := loadProving(t)

	if data.Name != "proving" || data.MapWidth != 64*16 || data.MapHeight != 16*16 {
		t.Fatalf("map %s %dx%d", data.Name, data.MapWidth, data.MapHeight)
	}
	if len(data.SolidRects) != 15 {
		t.Fatalf("got %d rects, want 15", len(data.SolidRects))
	}

	// The floor left of the pit is a single run.
	floor := data.SolidRects[7]
	if floor.X != 0 || floor.Y != 12*16 || floor.W != 44*16 || floor.H != 16 || floor.SlopeType != "" {
		t.Fatalf("floor run %+v", floor)
	}
}

func TestRampsStaySingleTiles(t *testing.T) {
	data := loadProving(t)

	var ramps []SolidRect
	for _, r := range data.SolidRects {
		if r.SlopeType != "" {
			ramps = append(ramps, r)
		}
	}
	if len(ramps) != 2 {
		t.Fatalf("got %d ramps, want 2", len(ramps))
	}
	if ramps[0].SlopeType != Slope45UpRight || ramps[0].X != 27*16 || ramps[0].W != 16 {
		t.Fatalf("rising ramp %+v", ramps[0])
	}
	if ramps[1].SlopeType != Slope45UpLeft || ramps[1].X != 36*16 {
		t.Fatalf("falling ramp %+v", ramps[1])
	}
}

func TestSpawnPointsOrdered(t *testing.T) {
	data := loadProving(t)
	if len(data.SpawnPoints) != 2 {
		t.Fatalf("got %d spawns", len(data.SpawnPoints))
	}
	for i, sp := range data.SpawnPoints {
		if sp.Index != i {
			t.Fatalf("spawn %d has index %d", i, sp.Index)
		}
	}
	if sp := data.SpawnPoints[1]; sp.X != 480 || sp.Y != 176 {
		t.Fatalf("ledge spawn %+v", sp)
	}
}

func TestLoadAll(t *testing.T) {
	levels, names, err := LoadAll(os.DirFS("../../assets"), "levels")
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(names) != 1 || names[0] != "proving" || levels["proving"] == nil {
		t.Fatalf("names %v", names)
	}

	if _, _, err := LoadAll(fstest.MapFS{}, "levels"); err == nil {
		t.Fatal("empty directory loaded")
	}
}
