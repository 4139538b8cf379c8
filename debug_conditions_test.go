package main

import "testing"

func TestParseConditionRegister(t *testing.T) {
	cond, err := ParseCondition("ax==$1234")
	if err != nil {
		t.Fatalf("ParseCondition: %v", err)
	}
	if cond.Source != CondSourceRegister || cond.RegName != "AX" || cond.Value != 0x1234 {
		t.Fatalf("parsed = %+v, want register AX == 0x1234", cond)
	}
}

func TestParseConditionMemory(t *testing.T) {
	cond, err := ParseCondition("[$1000]==$42")
	if err != nil {
		t.Fatalf("ParseCondition: %v", err)
	}
	if cond.Source != CondSourceMemory || cond.MemAddr != 0x1000 || cond.Value != 0x42 {
		t.Fatalf("parsed = %+v, want memory [0x1000] == 0x42", cond)
	}
}

func TestParseConditionLua(t *testing.T) {
	cond, err := ParseCondition("lua: regs.AX > 10")
	if err != nil {
		t.Fatalf("ParseCondition: %v", err)
	}
	if cond.Source != CondSourceLuaExpr || cond.LuaExpr != "regs.AX > 10" {
		t.Fatalf("parsed = %+v, want a lua expression condition", cond)
	}
	if got := FormatCondition(cond); got != "lua:regs.AX > 10" {
		t.Fatalf("FormatCondition = %q", got)
	}
}

func TestEvaluateConditionRegister(t *testing.T) {
	d, _ := newTestDebugger()
	d.SetRegister("AX", 5)
	cond := &BreakpointCondition{Source: CondSourceRegister, RegName: "AX", Op: CondOpEqual, Value: 5}
	if !evaluateCondition(cond, d) {
		t.Fatal("expected AX==5 condition to hold")
	}
	cond.Value = 6
	if evaluateCondition(cond, d) {
		t.Fatal("expected AX==6 condition to fail")
	}
}

func TestEvaluateConditionLuaExpr(t *testing.T) {
	d, _ := newTestDebugger()
	d.SetRegister("AX", 100)
	d.WriteMemory(0x1000, []byte{0x42})

	cond := &BreakpointCondition{Source: CondSourceLuaExpr, LuaExpr: "regs.AX == 100 and peek(0x1000) == 0x42"}
	if !evaluateCondition(cond, d) {
		t.Fatal("expected lua condition to hold")
	}

	cond.LuaExpr = "regs.AX == 1"
	if evaluateCondition(cond, d) {
		t.Fatal("expected lua condition to fail")
	}
}

func TestEvaluateLuaConditionBadExprIsFalse(t *testing.T) {
	d, _ := newTestDebugger()
	cond := &BreakpointCondition{Source: CondSourceLuaExpr, LuaExpr: "this is not lua("}
	if evaluateCondition(cond, d) {
		t.Fatal("a syntax error should evaluate to false, not fire the breakpoint")
	}
}

func TestEvaluateConditionWithHitCount(t *testing.T) {
	d, _ := newTestDebugger()
	cond := &BreakpointCondition{Source: CondSourceHitCount, Op: CondOpGreaterEqual, Value: 3}
	if evaluateConditionWithHitCount(cond, d, 2) {
		t.Fatal("hitcount 2 should not satisfy >=3")
	}
	if !evaluateConditionWithHitCount(cond, d, 3) {
		t.Fatal("hitcount 3 should satisfy >=3")
	}
}
