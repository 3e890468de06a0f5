package wire

import (
	"encoding/json"
	"testing"
)

func TestOpt_States(t *testing.T) {
	var unset Opt[int]
	if unset.IsSet() || unset.IsNull() || unset.HasValue() || !unset.IsZero() {
		t.Fatalf("zero value must be unset")
	}
	null := Null[int]()
	if !null.IsSet() || !null.IsNull() || null.HasValue() {
		t.Fatalf("null must be set and null")
	}
	value := Value(3)
	if got, ok := value.Get(); !ok || got != 3 {
		t.Fatalf("expected value 3, got %d", got)
	}
	if null.Or(7) != 7 || value.Or(7) != 3 {
		t.Fatalf("unexpected Or fallback")
	}
	if value.Ptr() == nil || null.Ptr() != nil {
		t.Fatalf("unexpected Ptr result")
	}
	if Map(value, func(v int) string { return "n" }).Or("") != "n" {
		t.Fatalf("expected mapped value")
	}
	if !Map(null, func(v int) string { return "n" }).IsNull() {
		t.Fatalf("expected map to keep null")
	}
}

func TestOpt_StandardJSONWithOmitZero(t *testing.T) {
	type holder struct {
		A Opt[string] `json:"a,omitzero"`
		B Opt[string] `json:"b,omitzero"`
		C Opt[string] `json:"c,omitzero"`
	}
	encoded, err := json.Marshal(holder{B: Null[string](), C: Value("x")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(encoded) != `{"b":null,"c":"x"}` {
		t.Fatalf("unexpected encoding %s", encoded)
	}
	var decoded holder
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.A.IsSet() || !decoded.B.IsNull() || decoded.C.Or("") != "x" {
		t.Fatalf("unexpected decoded holder %+v", decoded)
	}
}
