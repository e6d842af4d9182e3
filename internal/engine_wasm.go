//go:build wasm

package internal

import "sync"

var once sync.Once
var ambient *Engine

func AmbientEngine() *Engine {
	once.Do(func() {
		ambient = NewEngine(DefaultTable())
	})

	return ambient
}
