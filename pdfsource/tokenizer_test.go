package pdfsource

import (
	"reflect"
	"testing"
)

func TestTokenize_Operators(t *testing.T) {
	ops, err := tokenize([]byte("BT /F1 12 Tf 100 700.5 Td (Hello) Tj ET"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := []operation{
		{op: "BT"},
		{op: "Tf", args: []any{name("F1"), 12.0}},
		{op: "Td", args: []any{100.0, 700.5}},
		{op: "Tj", args: []any{[]byte("Hello")}},
		{op: "ET"},
	}
	if !reflect.DeepEqual(ops, want) {
		t.Errorf("Expected %v, got %v", want, ops)
	}
}

func TestTokenize_Strings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "(Hello) Tj", "Hello"},
		{"nested parens", "(a (b) c) Tj", "a (b) c"},
		{"escaped parens", `(a\(b\)) Tj`, "a(b)"},
		{"octal", `(\101\102C) Tj`, "ABC"},
		{"short octal", `(\7x) Tj`, "\x07x"},
		{"newline escape", `(a\nb) Tj`, "a\nb"},
		{"line continuation", "(ab\\\ncd) Tj", "abcd"},
		{"hex", "<48656C6C6F> Tj", "Hello"},
		{"hex with spaces", "<48 65 6c 6c 6f> Tj", "Hello"},
		{"odd hex", "<48656> Tj", "He`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops, err := tokenize([]byte(tt.input))
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(ops) != 1 || len(ops[0].args) != 1 {
				t.Fatalf("Expected one operation with one operand, got %v", ops)
			}
			got, ok := ops[0].args[0].([]byte)
			if !ok {
				t.Fatalf("Expected string operand, got %T", ops[0].args[0])
			}
			if string(got) != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, string(got))
			}
		})
	}
}

func TestTokenize_Array(t *testing.T) {
	ops, err := tokenize([]byte("[(Ja) -250 (ke)] TJ"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := []any{[]any{[]byte("Ja"), -250.0, []byte("ke")}}
	if len(ops) != 1 || ops[0].op != "TJ" || !reflect.DeepEqual(ops[0].args, want) {
		t.Errorf("Unexpected operations: %v", ops)
	}
}

func TestTokenize_Numbers(t *testing.T) {
	ops, err := tokenize([]byte("1 -2 +3 .5 -.25 4. cm"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := []any{1.0, -2.0, 3.0, 0.5, -0.25, 4.0}
	if !reflect.DeepEqual(ops[0].args, want) {
		t.Errorf("Expected %v, got %v", want, ops[0].args)
	}
}

func TestTokenize_NameEscapes(t *testing.T) {
	ops, err := tokenize([]byte("/A#20B Do"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ops[0].args[0] != name("A B") {
		t.Errorf("Expected name 'A B', got %v", ops[0].args[0])
	}
}

func TestTokenize_CommentsAndDicts(t *testing.T) {
	input := "% a comment (not a string)\n/P <</MCID 0>> BDC q Q EMC"
	ops, err := tokenize([]byte(input))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var names []string
	for _, o := range ops {
		names = append(names, o.op)
	}
	if !reflect.DeepEqual(names, []string{"BDC", "q", "Q", "EMC"}) {
		t.Errorf("Unexpected operators: %v", names)
	}
}

func TestTokenize_InlineImage(t *testing.T) {
	input := "q BI /W 2 /H 1 /BPC 8 ID \x00\xffEIx\x10 EI Q"
	ops, err := tokenize([]byte(input))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var names []string
	for _, o := range ops {
		names = append(names, o.op)
	}
	if !reflect.DeepEqual(names, []string{"q", "BI", "ID", "Q"}) {
		t.Errorf("Expected inline image data skipped, got %v", names)
	}
}

func TestTokenize_Booleans(t *testing.T) {
	ops, err := tokenize([]byte("true false null op"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ops[0].args, []any{true, false, nil}) {
		t.Errorf("Unexpected operands: %v", ops[0].args)
	}
}

func TestTokenize_Errors(t *testing.T) {
	tests := []string{
		"(unclosed Tj",
		"<4G> Tj",
		"[(a) (b) TJ",
		"<</A 1 BDC",
	}

	for _, input := range tests {
		if _, err := tokenize([]byte(input)); err == nil {
			t.Errorf("Expected error for %q", input)
		}
	}
}

func TestTokenize_Empty(t *testing.T) {
	ops, err := tokenize(nil)
	if err != nil || len(ops) != 0 {
		t.Errorf("Expected no operations, got %v, %v", ops, err)
	}
}
