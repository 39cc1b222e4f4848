package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for data-driven game logic: custom
// quest objective predicates and item effect tuning live in scripts so
// content changes don't need a rebuild. Single-goroutine access only
// (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given
// directory tree. Missing subdirectories are skipped.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, sub := range []string{"quest", "item"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// DoString executes raw Lua source. Used by tests to install functions
// without a script directory on disk.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

// EvalObjective calls the named global Lua predicate for a custom quest
// objective. The function receives a context table {current, required} and
// must return a boolean. A missing function is an error, not a silent pass.
func (e *Engine) EvalObjective(script string, current, required int) (bool, error) {
	fn := e.vm.GetGlobal(script)
	if fn == lua.LNil {
		return false, fmt.Errorf("lua function %s not found", script)
	}

	ctx := e.vm.NewTable()
	ctx.RawSetString("current", lua.LNumber(current))
	ctx.RawSetString("required", lua.LNumber(required))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, ctx); err != nil {
		return false, fmt.Errorf("call %s: %w", script, err)
	}

	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	return lua.LVAsBool(ret), nil
}

// ItemEffectAmount lets scripts tune an item effect's magnitude. Calls the
// global item_effect_amount(ctx) with {item_id, kind, base}; a missing
// function or a non-numeric return leaves the base amount unchanged.
func (e *Engine) ItemEffectAmount(itemID string, kind int, base int) int {
	fn := e.vm.GetGlobal("item_effect_amount")
	if fn == lua.LNil {
		return base
	}

	ctx := e.vm.NewTable()
	ctx.RawSetString("item_id", lua.LString(itemID))
	ctx.RawSetString("kind", lua.LNumber(kind))
	ctx.RawSetString("base", lua.LNumber(base))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, ctx); err != nil {
		e.log.Warn("item_effect_amount failed", zap.String("item_id", itemID), zap.Error(err))
		return base
	}

	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	if n, ok := ret.(lua.LNumber); ok {
		return int(n)
	}
	return base
}
