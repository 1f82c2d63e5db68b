package vm

import (
	"testing"
)

func TestUndefinedAndNull(t *testing.T) {
	if Undefined.Tag != TagUnset {
		t.Errorf("Undefined.Tag = %v, want TagUnset", Undefined.Tag)
	}
	if !isNull(Null) {
		t.Errorf("isNull(Null) = false, want true")
	}
	if IsObject(Null.Tag) {
		t.Errorf("IsObject(Null.Tag) = true, want false")
	}
}

func TestInt32RoundTrip(t *testing.T) {
	cases := []int32{0, 1, -1, 42, -42, 1 << 30, -(1 << 30)}
	for _, n := range cases {
		v := NewInt32(n)
		if v.Tag != TagInt32 {
			t.Errorf("NewInt32(%d).Tag = %v, want TagInt32", n, v.Tag)
		}
		if got := v.AsInt32(); got != n {
			t.Errorf("AsInt32() = %d, want %d", got, n)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	s := "hello"
	v := NewString(&s)
	if v.Tag != TagString {
		t.Errorf("Tag = %v, want TagString", v.Tag)
	}
	if got := v.AsString(); got != &s || *got != s {
		t.Errorf("AsString() = %v, want pointer to %q", got, s)
	}
}

func TestFunPtrRoundTrip(t *testing.T) {
	fn := &FunctionRef{Name: "f", Arity: 1}
	v := NewFunPtr(fn)
	if v.Tag != TagFunPtr {
		t.Errorf("Tag = %v, want TagFunPtr", v.Tag)
	}
	if got := v.AsFunPtr(); got != fn {
		t.Errorf("AsFunPtr() = %v, want %v", got, fn)
	}
}

func TestIsObjectTags(t *testing.T) {
	objectTags := []Tag{TagObject, TagClosure, TagArray}
	for _, tag := range objectTags {
		if !IsObject(tag) {
			t.Errorf("IsObject(%v) = false, want true", tag)
		}
	}
	nonObjectTags := []Tag{TagUnset, TagInt32, TagFunPtr, TagString, TagRefPtr}
	for _, tag := range nonObjectTags {
		if IsObject(tag) {
			t.Errorf("IsObject(%v) = true, want false", tag)
		}
	}
}

func TestInstanceOfPanicsOnNonObject(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected instanceOf to panic on a non-object value pair")
		}
	}()
	instanceOf(NewInt32(1))
}

func TestTagString(t *testing.T) {
	cases := map[Tag]string{
		TagUnset:   "unset",
		TagInt32:   "int32",
		TagFunPtr:  "funptr",
		TagString:  "string",
		TagRefPtr:  "refptr",
		TagObject:  "object",
		TagClosure: "closure",
		TagArray:   "array",
	}
	for tag, want := range cases {
		if got := tag.String(); got != want {
			t.Errorf("Tag(%d).String() = %q, want %q", tag, got, want)
		}
	}
}
