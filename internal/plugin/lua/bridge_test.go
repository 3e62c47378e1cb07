package lua

import (
	"reflect"
	"testing"

	glua "github.com/yuin/gopher-lua"
)

func TestBridgeToGoValue(t *testing.T) {
	L := glua.NewState()
	defer L.Close()
	bridge := NewBridge(L)

	tests := []struct {
		name     string
		input    glua.LValue
		expected any
	}{
		{"nil", glua.LNil, nil},
		{"true", glua.LTrue, true},
		{"false", glua.LFalse, false},
		{"integer", glua.LNumber(42), int64(42)},
		{"float", glua.LNumber(3.14), 3.14},
		{"string", glua.LString("hello"), "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := bridge.ToGoValue(tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("ToGoValue(%v) = %v (%T), want %v (%T)",
					tt.input, result, result, tt.expected, tt.expected)
			}
		})
	}
}

func TestBridgeToGoValueTable(t *testing.T) {
	L := glua.NewState()
	defer L.Close()
	bridge := NewBridge(L)

	t.Run("array", func(t *testing.T) {
		tbl := L.NewTable()
		tbl.RawSetInt(1, glua.LString("a"))
		tbl.RawSetInt(2, glua.LString("b"))

		got := bridge.ToGoValue(tbl)
		want := []any{"a", "b"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ToGoValue = %#v, want %#v", got, want)
		}
	})

	t.Run("map", func(t *testing.T) {
		tbl := L.NewTable()
		tbl.RawSetString("name", glua.LString("notes"))
		tbl.RawSetString("count", glua.LNumber(3))

		got := bridge.ToGoValue(tbl)
		want := map[string]any{"name": "notes", "count": int64(3)}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ToGoValue = %#v, want %#v", got, want)
		}
	})

	t.Run("circular", func(t *testing.T) {
		tbl := L.NewTable()
		tbl.RawSetString("self", tbl)

		got, ok := bridge.ToGoValue(tbl).(map[string]any)
		if !ok {
			t.Fatalf("ToGoValue type = %T, want map", got)
		}
		if got["self"] != nil {
			t.Errorf("self = %v, want nil", got["self"])
		}
	})
}

func TestBridgeToLuaValue(t *testing.T) {
	L := glua.NewState()
	defer L.Close()
	bridge := NewBridge(L)

	tests := []struct {
		name  string
		input any
		want  glua.LValue
	}{
		{"nil", nil, glua.LNil},
		{"bool", true, glua.LTrue},
		{"int", 42, glua.LNumber(42)},
		{"int64", int64(7), glua.LNumber(7)},
		{"int32", int32(5), glua.LNumber(5)},
		{"uint", uint(9), glua.LNumber(9)},
		{"float", 2.5, glua.LNumber(2.5)},
		{"string", "hello", glua.LString("hello")},
		{"nil pointer", (*int)(nil), glua.LNil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bridge.ToLuaValue(tt.input); got != tt.want {
				t.Errorf("ToLuaValue(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBridgeToLuaValueCollections(t *testing.T) {
	L := glua.NewState()
	defer L.Close()
	bridge := NewBridge(L)

	t.Run("string slice", func(t *testing.T) {
		tbl, ok := bridge.ToLuaValue([]string{"x", "y"}).(*glua.LTable)
		if !ok {
			t.Fatal("expected table")
		}
		if tbl.Len() != 2 || tbl.RawGetInt(2) != glua.LString("y") {
			t.Errorf("table = len %d, [2]=%v", tbl.Len(), tbl.RawGetInt(2))
		}
	})

	t.Run("map", func(t *testing.T) {
		tbl, ok := bridge.ToLuaValue(map[string]int{"lines": 3}).(*glua.LTable)
		if !ok {
			t.Fatal("expected table")
		}
		if got := tbl.RawGetString("lines"); got != glua.LNumber(3) {
			t.Errorf("lines = %v, want 3", got)
		}
	})

	t.Run("struct tags", func(t *testing.T) {
		type info struct {
			FontSize int    `lua:"font_size"`
			Name     string
			Hidden   bool `lua:"-"`
			private  int
		}
		tbl, ok := bridge.ToLuaValue(info{FontSize: 12, Name: "n", Hidden: true, private: 1}).(*glua.LTable)
		if !ok {
			t.Fatal("expected table")
		}
		if got := tbl.RawGetString("font_size"); got != glua.LNumber(12) {
			t.Errorf("font_size = %v, want 12", got)
		}
		if got := tbl.RawGetString("Name"); got != glua.LString("n") {
			t.Errorf("Name = %v, want n", got)
		}
		if got := tbl.RawGetString("Hidden"); got != glua.LNil {
			t.Errorf("Hidden = %v, want nil", got)
		}
		if got := tbl.RawGetString("private"); got != glua.LNil {
			t.Errorf("private = %v, want nil", got)
		}
	})
}

func TestBridgeRoundTrip(t *testing.T) {
	L := glua.NewState()
	defer L.Close()
	bridge := NewBridge(L)

	in := map[string]any{
		"characters": int64(11),
		"tags":       []any{"a", "b"},
		"nested":     map[string]any{"ok": true},
	}
	got := bridge.ToGoValue(bridge.ToLuaValue(in))
	if !reflect.DeepEqual(got, in) {
		t.Errorf("round trip = %#v, want %#v", got, in)
	}
}
