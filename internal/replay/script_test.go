package replay

import (
	"strings"
	"testing"

	"orzo/pkg/vm"
)

func TestParseSkipsBlankAndCommentLines(t *testing.T) {
	src := "# a comment\n\nnewobj a\n"
	ops, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(ops) != 1 || ops[0].Verb != "newobj" {
		t.Fatalf("Parse ops = %+v, want a single newobj op", ops)
	}
}

func TestRunBasicScript(t *testing.T) {
	src := strings.Join([]string{
		"newobj proto",
		"newobj obj proto=proto",
		"set proto.greeting = string:hi",
		"set obj.x = int32:1",
		"get obj.x",
		"get obj.greeting",
	}, "\n")

	ops, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s := NewSession(vm.DefaultConfig())
	if err := s.Run(ops); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(s.Events) != 6 {
		t.Fatalf("expected 6 events, got %d", len(s.Events))
	}
	last := s.Events[len(s.Events)-1]
	if last.Value != "string:hi" {
		t.Errorf("expected the get to report the value inherited from the prototype, got %q", last.Value)
	}
}

func TestRunRejectsUnknownBinding(t *testing.T) {
	ops, _ := Parse(strings.NewReader("set missing.x = int32:1"))
	s := NewSession(vm.DefaultConfig())
	if err := s.Run(ops); err == nil {
		t.Fatalf("expected Run to fail on a reference to an undefined binding")
	}
}

func TestRunSetAttrsForksShapeAndPreservesSlot(t *testing.T) {
	src := strings.Join([]string{
		"newobj obj",
		"set obj.a = int32:1",
		"set obj.b = int32:2",
		"setattrs obj.a configurable,writable,enumerable",
		"set obj.a = int32:3",
	}, "\n")

	ops, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s := NewSession(vm.DefaultConfig())
	if err := s.Run(ops); err != nil {
		t.Fatalf("Run: %v", err)
	}

	obj := s.Env["obj"]
	if got := s.VM.GetProp(obj, "a"); got != vm.NewInt32(3) {
		t.Errorf("expected obj.a to still be settable to its new value, got %+v", got)
	}
	if got := s.VM.GetProp(obj, "b"); got != vm.NewInt32(2) {
		t.Errorf("expected obj.b's slot to survive the setattrs fork on a, got %+v", got)
	}
}

func TestRunSetAttrsRejectsUnknownProperty(t *testing.T) {
	src := strings.Join([]string{
		"newobj obj",
		"setattrs obj.missing writable",
	}, "\n")
	ops, _ := Parse(strings.NewReader(src))
	s := NewSession(vm.DefaultConfig())
	if err := s.Run(ops); err == nil {
		t.Fatalf("expected Run to fail on setattrs against an undefined property")
	}
}

func TestRunRejectsNonWritableOverwrite(t *testing.T) {
	src := strings.Join([]string{
		"newobj obj",
		"defconst obj.c = int32:1",
		"set obj.c = int32:2",
	}, "\n")
	ops, _ := Parse(strings.NewReader(src))
	s := NewSession(vm.DefaultConfig())
	if err := s.Run(ops); err == nil {
		t.Fatalf("expected Run to fail when overwriting a const property")
	}
}
