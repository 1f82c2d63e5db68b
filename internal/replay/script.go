// Package replay interprets a small line-oriented script of property
// operations against a vm.VM, standing in for the lexer/parser/compiler
// front end this core does not own (spec.md §1 Non-goals). It exists purely
// as a diagnostic harness for orzoctl: exercise def/get/set/delete against a
// shape tree without a real host language on top.
package replay

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"orzo/pkg/vm"
)

// Op is one parsed script line.
type Op struct {
	Line int
	Verb string
	Args []string
}

// Event records the observable effect of applying one Op, for orzoctl's
// text or JSON output.
type Event struct {
	Line   int    `json:"line"`
	Verb   string `json:"verb"`
	Target string `json:"target,omitempty"`
	Value  string `json:"value,omitempty"`
	Ok     bool   `json:"ok"`
}

// Session holds the bindings a script accumulates: names to Value pairs.
type Session struct {
	VM     *vm.VM
	Env    map[string]vm.Value
	Events []Event
}

// NewSession constructs an empty replay session over a fresh VM.
func NewSession(cfg *vm.Config) *Session {
	return &Session{VM: vm.NewVM(cfg), Env: map[string]vm.Value{}}
}

// Parse tokenizes r into a sequence of Ops, skipping blank lines and lines
// beginning with '#'.
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		ops = append(ops, Op{Line: lineNo, Verb: fields[0], Args: fields[1:]})
	}
	if err := scanner.Err(); err != nil {
		return nil, &vm.RegistrySnapshotError{Msg: "reading script", Cause: err}
	}
	return ops, nil
}

// Run applies every op in sequence, returning the first error encountered
// along with everything already applied.
func (s *Session) Run(ops []Op) error {
	for _, op := range ops {
		if err := s.apply(op); err != nil {
			return fmt.Errorf("line %d: %w", op.Line, err)
		}
	}
	return nil
}

func (s *Session) apply(op Op) error {
	switch op.Verb {
	case "newobj":
		return s.newObj(op)
	case "newclos":
		return s.newClos(op)
	case "set":
		return s.setOrDefConst(op, false)
	case "defconst":
		return s.setOrDefConst(op, true)
	case "get":
		return s.get(op)
	case "delete":
		return s.deleteProp(op)
	case "setattrs":
		return s.setAttrs(op)
	case "global":
		return s.setGlobal(op)
	default:
		return fmt.Errorf("unknown verb %q", op.Verb)
	}
}

func (s *Session) newObj(op Op) error {
	if len(op.Args) < 1 {
		return fmt.Errorf("newobj requires a binding name")
	}
	name := op.Args[0]
	proto := vm.Null
	for _, arg := range op.Args[1:] {
		if v, ok := strings.CutPrefix(arg, "proto="); ok {
			bound, ok := s.Env[v]
			if !ok {
				return fmt.Errorf("undefined binding %q", v)
			}
			proto = bound
		}
	}
	s.Env[name] = s.VM.NewObj(proto)
	s.Events = append(s.Events, Event{Line: op.Line, Verb: op.Verb, Target: name, Ok: true})
	return nil
}

func (s *Session) newClos(op Op) error {
	if len(op.Args) < 1 {
		return fmt.Errorf("newclos requires a binding name")
	}
	name := op.Args[0]
	cells := 0
	arity := 0
	fnName := name
	for _, arg := range op.Args[1:] {
		switch {
		case strings.HasPrefix(arg, "cells="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "cells="))
			if err != nil {
				return err
			}
			cells = n
		case strings.HasPrefix(arg, "arity="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "arity="))
			if err != nil {
				return err
			}
			arity = n
		case strings.HasPrefix(arg, "fn="):
			fnName = strings.TrimPrefix(arg, "fn=")
		}
	}
	fn := &vm.FunctionRef{Name: fnName, Arity: arity}
	s.Env[name] = s.VM.NewClos(vm.Null, cells, fn)
	s.Events = append(s.Events, Event{Line: op.Line, Verb: op.Verb, Target: name, Ok: true})
	return nil
}

func (s *Session) resolveTarget(spec string) (vm.Value, string, error) {
	dot := strings.IndexByte(spec, '.')
	if dot < 0 {
		return vm.Undefined, "", fmt.Errorf("expected <binding>.<prop>, got %q", spec)
	}
	name, prop := spec[:dot], spec[dot+1:]
	obj, ok := s.Env[name]
	if !ok {
		return vm.Undefined, "", fmt.Errorf("undefined binding %q", name)
	}
	return obj, prop, nil
}

func parseValue(lit string) (vm.Value, error) {
	colon := strings.IndexByte(lit, ':')
	if colon < 0 {
		return vm.Undefined, fmt.Errorf("expected <kind>:<literal>, got %q", lit)
	}
	kind, payload := lit[:colon], lit[colon+1:]
	switch kind {
	case "int32":
		n, err := strconv.ParseInt(payload, 10, 32)
		if err != nil {
			return vm.Undefined, err
		}
		return vm.NewInt32(int32(n)), nil
	case "string":
		return vm.NewString(&payload), nil
	case "null":
		return vm.Null, nil
	default:
		return vm.Undefined, fmt.Errorf("unknown value kind %q", kind)
	}
}

func (s *Session) setOrDefConst(op Op, isConst bool) error {
	if len(op.Args) < 3 || op.Args[1] != "=" {
		return fmt.Errorf("expected \"<target> = <kind>:<literal> [enumerable]\"")
	}
	obj, prop, err := s.resolveTarget(op.Args[0])
	if err != nil {
		return err
	}
	val, err := parseValue(op.Args[2])
	if err != nil {
		return err
	}

	var ok bool
	if isConst {
		enumerable := len(op.Args) > 3 && op.Args[3] == "enumerable"
		ok = s.VM.DefConst(obj, prop, val, enumerable)
	} else {
		ok = s.VM.SetProp(obj, prop, val)
	}
	s.Events = append(s.Events, Event{Line: op.Line, Verb: op.Verb, Target: op.Args[0], Value: op.Args[2], Ok: ok})
	if !ok {
		return fmt.Errorf("%s rejected on %s", op.Verb, op.Args[0])
	}
	return nil
}

func (s *Session) get(op Op) error {
	if len(op.Args) < 1 {
		return fmt.Errorf("get requires <target>")
	}
	obj, prop, err := s.resolveTarget(op.Args[0])
	if err != nil {
		return err
	}
	val := s.VM.GetProp(obj, prop)
	s.Events = append(s.Events, Event{Line: op.Line, Verb: op.Verb, Target: op.Args[0], Value: describeValue(val), Ok: true})
	return nil
}

func (s *Session) deleteProp(op Op) error {
	if len(op.Args) < 1 {
		return fmt.Errorf("delete requires <target>")
	}
	obj, prop, err := s.resolveTarget(op.Args[0])
	if err != nil {
		return err
	}
	ok := s.VM.DeleteProp(obj, prop)
	s.Events = append(s.Events, Event{Line: op.Line, Verb: op.Verb, Target: op.Args[0], Ok: ok})
	if !ok {
		return fmt.Errorf("delete rejected on %s", op.Args[0])
	}
	return nil
}

// setAttrs implements the "setattrs <target> <flags>" verb, exercising
// vm.SetPropAttrs: flags is a comma-separated subset of
// configurable,writable,enumerable,extensible naming the attributes the
// redefinition should carry (any omitted attribute is cleared). The target
// property must already be defined somewhere on the object's shape chain.
func (s *Session) setAttrs(op Op) error {
	if len(op.Args) < 2 {
		return fmt.Errorf("expected \"setattrs <target> <flags>\"")
	}
	obj, prop, err := s.resolveTarget(op.Args[0])
	if err != nil {
		return err
	}
	attrs, err := parseAttrs(op.Args[1])
	if err != nil {
		return err
	}

	shape := s.VM.GetShape(obj)
	defShape := s.VM.Shapes.GetDefShape(shape, prop)
	if defShape == nil {
		return fmt.Errorf("setattrs: %q is not defined on %s", prop, op.Args[0])
	}

	ok := s.VM.SetPropAttrs(obj, defShape, attrs)
	s.Events = append(s.Events, Event{Line: op.Line, Verb: op.Verb, Target: op.Args[0], Value: op.Args[1], Ok: ok})
	if !ok {
		return fmt.Errorf("setattrs rejected on %s", op.Args[0])
	}
	return nil
}

func parseAttrs(spec string) (vm.Attributes, error) {
	var attrs vm.Attributes
	for _, flag := range strings.Split(spec, ",") {
		switch flag {
		case "configurable":
			attrs |= vm.AttrConfigurable
		case "writable":
			attrs |= vm.AttrWritable
		case "enumerable":
			attrs |= vm.AttrEnumerable
		case "extensible":
			attrs |= vm.AttrExtensible
		default:
			return 0, fmt.Errorf("unknown attribute flag %q", flag)
		}
	}
	return attrs, nil
}

func (s *Session) setGlobal(op Op) error {
	if len(op.Args) < 1 {
		return fmt.Errorf("global requires a binding name")
	}
	obj, ok := s.Env[op.Args[0]]
	if !ok {
		return fmt.Errorf("undefined binding %q", op.Args[0])
	}
	s.VM.GlobalObject = obj
	s.Events = append(s.Events, Event{Line: op.Line, Verb: op.Verb, Target: op.Args[0], Ok: true})
	return nil
}

func describeValue(v vm.Value) string {
	if v == vm.Undefined {
		return "undefined"
	}
	switch v.Tag {
	case vm.TagInt32:
		return fmt.Sprintf("int32:%d", v.AsInt32())
	case vm.TagString:
		return "string:" + *v.AsString()
	default:
		return v.Tag.String()
	}
}
