package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/flockworks/boids/internal/core/ecs"
)

// apiVersion is published to scripts as API_VERSION.
const apiVersion = 1

// Commands is the control surface scripts drive. Calls are queued and
// take effect on the next frame.
type Commands interface {
	TogglePause()
	Step()
	Spawn(count, predators int)
	Quit()
}

// Engine wraps a single gopher-lua VM running control scripts.
// Single-goroutine access only (the frame loop).
type Engine struct {
	vm      *lua.LState
	world   *ecs.World
	cmds    Commands
	frame   uint64
	missing map[string]bool // functions already reported absent
	log     *zap.Logger
}

// NewEngine creates a VM with the control API installed. Load scripts
// with LoadPath or LoadString, then install Hook on the world.
func NewEngine(w *ecs.World, cmds Commands, log *zap.Logger) *Engine {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(apiVersion))

	e := &Engine{
		vm:      vm,
		world:   w,
		cmds:    cmds,
		missing: make(map[string]bool),
		log:     log.Named("script"),
	}
	e.register()
	return e
}

func (e *Engine) register() {
	api := map[string]lua.LGFunction{
		"pause": func(L *lua.LState) int {
			e.cmds.TogglePause()
			return 0
		},
		"step": func(L *lua.LState) int {
			e.cmds.Step()
			return 0
		},
		"spawn": func(L *lua.LState) int {
			n := L.CheckInt(1)
			predators := L.OptInt(2, 0)
			if n < 0 || predators < 0 {
				L.ArgError(1, "spawn counts must be non-negative")
			}
			e.cmds.Spawn(n, predators)
			return 0
		},
		"quit": func(L *lua.LState) int {
			e.cmds.Quit()
			return 0
		},
		"population": func(L *lua.LState) int {
			L.Push(lua.LNumber(len(e.world.Entities())))
			return 1
		},
		"running": func(L *lua.LState) int {
			L.Push(lua.LBool(e.world.Running()))
			return 1
		},
		"tick": func(L *lua.LState) int {
			L.Push(lua.LNumber(e.world.Ticks()))
			return 1
		},
		"log": func(L *lua.LState) int {
			e.log.Info(L.CheckString(1))
			return 0
		},
	}
	for name, fn := range api {
		e.vm.SetGlobal(name, e.vm.NewFunction(fn))
	}
}

// LoadPath runs a script file, or every .lua file of a directory in name
// order.
func (e *Engine) LoadPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("load script: %w", err)
	}
	if !info.IsDir() {
		return e.loadFile(path)
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("load script dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		if err := e.loadFile(filepath.Join(path, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) loadFile(path string) error {
	if err := e.vm.DoFile(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	e.log.Debug("loaded lua script", zap.String("file", path))
	return nil
}

// LoadString runs an inline chunk.
func (e *Engine) LoadString(src string) error {
	if err := e.vm.DoString(src); err != nil {
		return fmt.Errorf("load inline script: %w", err)
	}
	return nil
}

// Hook is a frame hook calling the script's on_frame(frame). Frames are
// numbered from 1. A missing on_frame is reported once and skipped; a Lua
// error aborts the frame.
func (e *Engine) Hook(_ *ecs.World) error {
	e.frame++
	return e.call("on_frame", lua.LNumber(e.frame))
}

func (e *Engine) call(name string, args ...lua.LValue) error {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		if !e.missing[name] {
			e.missing[name] = true
			e.log.Warn("lua function not found", zap.String("func", name))
		}
		return nil
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, args...); err != nil {
		return fmt.Errorf("lua %s: %w", name, err)
	}
	return nil
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}
