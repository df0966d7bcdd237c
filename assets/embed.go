package assets

import (
	"embed"
	"io/fs"
)

//go:embed data/*.yaml scripts/*.lua
var files embed.FS

// Content returns the built-in content tables (creatures.yaml, items.yaml,
// spells.yaml).
func Content() fs.FS {
	sub, err := fs.Sub(files, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Scripts returns the built-in Lua scripts.
func Scripts() fs.FS {
	sub, err := fs.Sub(files, "scripts")
	if err != nil {
		panic(err)
	}
	return sub
}
