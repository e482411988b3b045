package statline

import "testing"

func TestValueBlankIsNotZero(t *testing.T) {
	t.Parallel()

	blank := Blank()
	zero := Of(0)

	if !blank.IsBlank() {
		t.Fatal("Blank() must report blank")
	}
	if zero.IsBlank() {
		t.Fatal("Of(0) must not report blank")
	}
	if blank.Float64() != 0 {
		t.Fatalf("blank reads as %v in arithmetic, want 0", blank.Float64())
	}
	if blank.String() != "" {
		t.Fatalf("blank renders as %q, want empty", blank.String())
	}
	if zero.String() != "0" {
		t.Fatalf("zero renders as %q, want 0", zero.String())
	}
}

func TestValueAdd(t *testing.T) {
	t.Parallel()

	if got := Blank().Add(Blank()); !got.IsBlank() {
		t.Fatalf("blank+blank = %v, want blank", got)
	}
	if got := Blank().Add(Of(2)); got.IsBlank() || got.Float64() != 2 {
		t.Fatalf("blank+2 = %v, want 2", got)
	}
	if got := Of(1.5).Add(Of(2)); got.Float64() != 3.5 {
		t.Fatalf("1.5+2 = %v, want 3.5", got)
	}
	// A played game with a zero line still marks the category as played.
	if got := Of(0).Add(Blank()); got.IsBlank() {
		t.Fatal("0+blank must stay non-blank")
	}
}

func TestValueRound(t *testing.T) {
	t.Parallel()

	if got := Of(0.9166666).Round(6); got.Float64() != 0.916667 {
		t.Fatalf("Round(6) = %v, want 0.916667", got)
	}
	if got := Blank().Round(3); !got.IsBlank() {
		t.Fatalf("blank Round = %v, want blank", got)
	}
}

func TestValueJSON(t *testing.T) {
	t.Parallel()

	raw, err := Blank().MarshalJSON()
	if err != nil {
		t.Fatalf("marshal blank: %v", err)
	}
	if string(raw) != "null" {
		t.Fatalf("blank marshals to %s, want null", raw)
	}

	raw, err = Of(4.25).MarshalJSON()
	if err != nil {
		t.Fatalf("marshal value: %v", err)
	}
	if string(raw) != "4.25" {
		t.Fatalf("value marshals to %s, want 4.25", raw)
	}

	var v Value
	if err := v.UnmarshalJSON([]byte("null")); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !v.IsBlank() {
		t.Fatal("null must unmarshal to blank")
	}
	if err := v.UnmarshalJSON([]byte("3")); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if v.Float64() != 3 {
		t.Fatalf("unmarshal 3 = %v", v)
	}
	if err := v.UnmarshalJSON([]byte(`"x"`)); err == nil {
		t.Fatal("expected error for non-numeric payload")
	}
}

func TestValueSQL(t *testing.T) {
	t.Parallel()

	dv, err := Blank().Value()
	if err != nil {
		t.Fatalf("driver value blank: %v", err)
	}
	if dv != nil {
		t.Fatalf("blank driver value = %v, want nil", dv)
	}

	var v Value
	if err := v.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if !v.IsBlank() {
		t.Fatal("NULL must scan to blank")
	}
	if err := v.Scan(float64(2.5)); err != nil {
		t.Fatalf("scan float64: %v", err)
	}
	if v.Float64() != 2.5 {
		t.Fatalf("scan float64 = %v", v)
	}
	if err := v.Scan(int64(7)); err != nil {
		t.Fatalf("scan int64: %v", err)
	}
	if v.Float64() != 7 {
		t.Fatalf("scan int64 = %v", v)
	}
	if err := v.Scan([]byte("1.5")); err != nil {
		t.Fatalf("scan bytes: %v", err)
	}
	if v.Float64() != 1.5 {
		t.Fatalf("scan bytes = %v", v)
	}
	if err := v.Scan(struct{}{}); err == nil {
		t.Fatal("expected error for unsupported scan type")
	}
}
