// Package assets embeds the default animation library and terrain maps,
// and synthesizes the footstep sounds.
package assets

import (
	"embed"
	"io/fs"

	"github.com/automoto/gaitkit/assets/animations"
	"github.com/automoto/gaitkit/shared/leveldata"
)

const (
	libraryDir = "data"
	levelsDir  = "levels"
)

var (
	//go:embed all:data
	libraryFS embed.FS

	//go:embed all:levels
	levelFS embed.FS
)

// LibraryFS exposes the embedded library directory.
func LibraryFS() fs.FS {
	sub, err := fs.Sub(libraryFS, libraryDir)
	if err != nil {
		panic(err)
	}
	return sub
}

// LoadLibrary parses the embedded animation library.
func LoadLibrary() (*animations.Library, error) {
	return animations.Load(libraryFS, libraryDir)
}

// MustLoadLibrary is LoadLibrary for startup paths that cannot continue
// without animations.
func MustLoadLibrary() *animations.Library {
	lib, err := LoadLibrary()
	if err != nil {
		panic(err)
	}
	return lib
}

// LoadLevels parses every embedded terrain map.
func LoadLevels() (map[string]*leveldata.CollisionData, []string, error) {
	return leveldata.LoadAll(levelFS, levelsDir)
}

// LoadLevel parses one embedded terrain map by stem name.
func LoadLevel(name string) (*leveldata.CollisionData, error) {
	return leveldata.LoadCollisionData(levelFS, levelsDir+"/"+name+".tmx")
}
