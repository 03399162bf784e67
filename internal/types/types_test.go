package types

import "testing"

func TestWideningIsOneDirectional(t *testing.T) {
	if !Int.AssignableTo(Double) {
		t.Fatal("Int should widen to Double")
	}
	if Double.AssignableTo(Int) {
		t.Fatal("Double must never narrow to Int")
	}
}

func TestEqualIgnoresColumnOrder(t *testing.T) {
	a := TableOf(Parameter{Type: Int, Name: "id"}, Parameter{Type: String, Name: "name"})
	b := TableOf(Parameter{Type: String, Name: "name"}, Parameter{Type: Int, Name: "id"})
	if !a.Equal(b) {
		t.Fatal("table schemas with the same columns in different order should be equal")
	}
}

func TestEqualRejectsSchemaMismatch(t *testing.T) {
	a := RowOf(Parameter{Type: Int, Name: "id"})
	b := RowOf(Parameter{Type: Int, Name: "id"}, Parameter{Type: Int, Name: "v"})
	if a.Equal(b) {
		t.Fatal("rows with different column sets must not be equal")
	}
}

func TestArrayOfIsStructural(t *testing.T) {
	if !ArrayOf(Int).Equal(ArrayOf(Int)) {
		t.Fatal("Array(Int) should equal Array(Int)")
	}
	if ArrayOf(Int).Equal(ArrayOf(Double)) {
		t.Fatal("Array(Int) must not equal Array(Double)")
	}
}

func TestColumnLookupByName(t *testing.T) {
	row := RowOf(Parameter{Type: Int, Name: "v"}, Parameter{Type: String, Name: "name"})
	p, ok := row.Column("name")
	if !ok || !p.Type.Equal(String) {
		t.Fatal("expected to find column 'name' with type String")
	}
	if _, ok := row.Column("missing"); ok {
		t.Fatal("unexpected column found")
	}
}

func TestStringRendering(t *testing.T) {
	fn := FunctionOf(Bool, Int, String)
	if fn.String() != "fn(Int, String) Bool" {
		t.Fatalf("unexpected rendering: %s", fn.String())
	}
}
