// Package scripting lets a Lua script replace the melee damage formula.
package scripting

import (
	"fmt"
	"io/fs"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"sneaky/internal/world"
)

// MeleeFunc is the global the script must define.
const MeleeFunc = "melee_damage"

// Melee is a world.MeleeFormula backed by a gopher-lua VM. Single-goroutine
// access only, like the rest of the simulation.
type Melee struct {
	vm       *lua.LState
	fn       lua.LValue
	log      *zap.Logger
	fallback world.MeleeFormula
}

// LoadMelee runs the script name from fsys and checks that it defines
// melee_damage.
func LoadMelee(fsys fs.FS, name string, log *zap.Logger) (*Melee, error) {
	src, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read script %s: %w", name, err)
	}
	return NewMelee(string(src), log)
}

// NewMelee compiles src. Runtime errors in the script are logged and the
// built-in formula is used for that hit.
func NewMelee(src string, log *zap.Logger) (*Melee, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	if err := vm.DoString(src); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load melee script: %w", err)
	}
	fn := vm.GetGlobal(MeleeFunc)
	if fn.Type() != lua.LTFunction {
		vm.Close()
		return nil, fmt.Errorf("melee script: %s is not defined", MeleeFunc)
	}
	return &Melee{vm: vm, fn: fn, log: log, fallback: world.DefaultMelee{}}, nil
}

// MeleeDamage calls melee_damage with a table of the hit's numbers.
func (m *Melee) MeleeDamage(in world.MeleeInput) int {
	t := m.vm.NewTable()
	t.RawSetString("strength", lua.LNumber(in.Strength))
	t.RawSetString("defense", lua.LNumber(in.Defense))
	t.RawSetString("bonus_strength", lua.LNumber(in.BonusStrength))
	t.RawSetString("bonus_defense", lua.LNumber(in.BonusDefense))

	if err := m.vm.CallByParam(lua.P{Fn: m.fn, NRet: 1, Protect: true}, t); err != nil {
		m.log.Error("lua melee_damage error", zap.Error(err))
		return m.fallback.MeleeDamage(in)
	}
	result := m.vm.Get(-1)
	m.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		m.log.Error("lua melee_damage returned non-number", zap.String("type", result.Type().String()))
		return m.fallback.MeleeDamage(in)
	}
	return max(0, int(n))
}

func (m *Melee) Close() {
	m.vm.Close()
}
