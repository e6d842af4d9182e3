//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

var engines sync.Map

// AmbientEngine returns the calling goroutine's default engine, creating it
// on first use against the default table.
func AmbientEngine() *Engine {
	gid := getGID()

	if e, ok := engines.Load(gid); ok {
		return e.(*Engine)
	}

	e := NewEngine(DefaultTable())
	engines.Store(gid, e)
	return e
}

func getGID() int64 {
	return goid.Get()
}
