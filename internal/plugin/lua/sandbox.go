package lua

import (
	"fmt"
	"io"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// Sandbox restricts Lua execution to safe operations.
type Sandbox struct {
	L *lua.LState

	output io.Writer

	mu      sync.Mutex
	modules map[string]bool
}

// NewSandbox creates a new sandbox for the Lua state. print writes to out.
func NewSandbox(L *lua.LState, out io.Writer) *Sandbox {
	if out == nil {
		out = io.Discard
	}
	return &Sandbox{
		L:      L,
		output: out,
		modules: map[string]bool{
			"string": true,
			"table":  true,
			"math":   true,
		},
	}
}

// Install sets up the sandbox restrictions.
func (s *Sandbox) Install() {
	// Remove functions that load code from disk or strings
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		s.L.SetGlobal(name, lua.LNil)
	}

	s.installSafePrint()
	s.installSafeRequire()
}

// AllowModule adds name to the modules require may load.
func (s *Sandbox) AllowModule(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modules[name] = true
}

// ModuleAllowed reports whether require(name) is permitted.
func (s *Sandbox) ModuleAllowed(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modules[name]
}

// installSafePrint replaces print with a version writing to the sandbox
// output instead of stdout, which belongs to the terminal UI.
func (s *Sandbox) installSafePrint() {
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, n)
		for i := 1; i <= n; i++ {
			parts[i-1] = L.ToStringMeta(L.Get(i)).String()
		}
		fmt.Fprintln(s.output, strings.Join(parts, "\t"))
		return 0
	}))
}

// installSafeRequire clears the package search paths and replaces require
// with a version that only loads allowed modules.
func (s *Sandbox) installSafeRequire() {
	if pkg, ok := s.L.GetGlobal("package").(*lua.LTable); ok {
		s.L.SetField(pkg, "path", lua.LString(""))
		s.L.SetField(pkg, "cpath", lua.LString(""))
	}

	originalRequire := s.L.GetGlobal("require")

	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		modName := L.CheckString(1)

		if !s.ModuleAllowed(modName) {
			// L.RaiseError does a longjmp, so code after it is unreachable.
			L.RaiseError("module %q is not available", modName)
			return 0
		}

		L.Push(originalRequire)
		L.Push(lua.LString(modName))
		L.Call(1, 1)
		return 1
	}))
}
