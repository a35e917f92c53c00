package leveldata

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/automoto/gaitkit/config"
	"github.com/lafriks/go-tiled"
)

// LoadCollisionData parses a TMX file and returns its terrain and avatar
// spawn points. It takes an fs.FS so callers can pass the embedded terrain
// or os.DirFS.
func LoadCollisionData(fsys fs.FS, tmxPath string) (*CollisionData, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	data := &CollisionData{
		Name:       strings.TrimSuffix(path.Base(tmxPath), ".tmx"),
		TileWidth:  levelMap.TileWidth,
		TileHeight: levelMap.TileHeight,
		MapWidth:   levelMap.Width * levelMap.TileWidth,
		MapHeight:  levelMap.Height * levelMap.TileHeight,
	}

	for _, layer := range levelMap.Layers {
		if !solidLayer(layer) {
			continue
		}
		data.SolidRects = append(data.SolidRects, solidRuns(levelMap, layer)...)
	}
	data.SpawnPoints = spawnPoints(levelMap)
	return data, nil
}

// solidLayer reports whether a tile layer holds terrain: the configured
// layer name, or any layer with solid=true.
func solidLayer(layer *tiled.Layer) bool {
	return layer.Name == config.Terrain.SolidLayer || layer.Properties.GetBool("solid")
}

// solidRuns walks the layer row by row. Consecutive plain tiles become one
// rect; ramp tiles stay one rect each so the probe can read their slope.
func solidRuns(m *tiled.Map, layer *tiled.Layer) []SolidRect {
	tileW := float64(m.TileWidth)
	tileH := float64(m.TileHeight)

	var rects []SolidRect
	for y := 0; y < m.Height; y++ {
		start := -1
		flush := func(end int) {
			if start < 0 {
				return
			}
			rects = append(rects, SolidRect{
				X: float64(start) * tileW,
				Y: float64(y) * tileH,
				W: float64(end-start) * tileW,
				H: tileH,
			})
			start = -1
		}

		for x := 0; x < m.Width; x++ {
			tile := layer.Tiles[y*m.Width+x]
			if tile.IsNil() {
				flush(x)
				continue
			}
			if slope := slopeType(tile); slope != "" {
				flush(x)
				rects = append(rects, SolidRect{
					X:         float64(x) * tileW,
					Y:         float64(y) * tileH,
					W:         tileW,
					H:         tileH,
					SlopeType: slope,
				})
				continue
			}
			if start < 0 {
				start = x
			}
		}
		flush(m.Width)
	}
	return rects
}

func slopeType(tile *tiled.LayerTile) string {
	tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID)
	if err != nil {
		return ""
	}
	return tilesetTile.Properties.GetString("slope")
}

// spawnPoints reads the spawn object group, ordered by spawnIndex.
func spawnPoints(m *tiled.Map) []SpawnPoint {
	var spawns []SpawnPoint
	for _, og := range m.ObjectGroups {
		if og.Name != config.Terrain.SpawnGroup {
			continue
		}
		for _, o := range og.Objects {
			spawns = append(spawns, SpawnPoint{
				X:     o.X,
				Y:     o.Y,
				Index: o.Properties.GetInt("spawnIndex"),
			})
		}
	}

	sort.Slice(spawns, func(i, j int) bool {
		return spawns[i].Index < spawns[j].Index
	})
	return spawns
}

// LoadAll discovers every .tmx file in dir within fsys and returns the
// collision data keyed by stem name plus the sorted list of names.
func LoadAll(fsys fs.FS, dir string) (map[string]*CollisionData, []string, error) {
	pattern := path.Join(dir, "*.tmx")
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", dir)
	}

	levels := make(map[string]*CollisionData, len(matches))
	names := make([]string, 0, len(matches))
	for _, p := range matches {
		data, err := LoadCollisionData(fsys, p)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", p, err)
		}
		levels[data.Name] = data
		names = append(names, data.Name)
	}

	sort.Strings(names)
	return levels, names, nil
}
