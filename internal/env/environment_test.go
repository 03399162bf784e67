package env

import (
	"testing"

	"github.com/AAUP4-Projekt/wrench/internal/values"
)

func TestDeclareRejectsShadowing(t *testing.T) {
	e := New()
	if err := e.Declare(&Binding{Name: "x", Value: values.Int(1)}); err != nil {
		t.Fatal(err)
	}
	e.PushScope()
	defer e.PopScope()
	if err := e.Declare(&Binding{Name: "x", Value: values.Int(2)}); err == nil {
		t.Fatal("expected a RedeclarationError for a name visible in an outer scope")
	}
}

func TestUpdateNearestVisible(t *testing.T) {
	e := New()
	_ = e.Declare(&Binding{Name: "x", Value: values.Int(1)})
	if err := e.Update("x", values.Int(2)); err != nil {
		t.Fatal(err)
	}
	b, err := e.Lookup("x")
	if err != nil || b.Value != values.Int(2) {
		t.Fatalf("Lookup after Update = %v, %v", b, err)
	}
}

func TestUpdateRejectsConst(t *testing.T) {
	e := New()
	_ = e.Declare(&Binding{Name: "k", Value: values.Int(1), IsConstant: true})
	if err := e.Update("k", values.Int(2)); err == nil {
		t.Fatal("expected a ConstAssignmentError")
	}
}

func TestUpdateRejectsFunction(t *testing.T) {
	e := New()
	_ = e.Declare(&Binding{Name: "f", IsFunction: true})
	if err := e.Update("f", values.Int(2)); err == nil {
		t.Fatal("expected a NotAVariableError")
	}
}

func TestLookupUnknown(t *testing.T) {
	e := New()
	if _, err := e.Lookup("missing"); err == nil {
		t.Fatal("expected an UnknownIdentifierError")
	}
}

func TestPopScopeDestroysBindings(t *testing.T) {
	e := New()
	e.PushScope()
	_ = e.Declare(&Binding{Name: "y", Value: values.Int(1)})
	e.PopScope()
	if _, err := e.Lookup("y"); err == nil {
		t.Fatal("expected y to be gone once its scope popped")
	}
}
