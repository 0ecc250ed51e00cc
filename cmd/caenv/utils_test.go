package caenv

import "testing"

func TestPickPrecedence(t *testing.T) {
	local := "from-local"
	global := "from-global"
	if got := pickString("from-cli", &local, &global); got != "from-cli" {
		t.Fatalf("CLI value should win, got %q", got)
	}
	if got := pickString("", &local, &global); got != "from-local" {
		t.Fatalf("local should beat global, got %q", got)
	}
	if got := pickString("", nil, &global); got != "from-global" {
		t.Fatalf("global should be the fallback, got %q", got)
	}
	if got := pickString("", nil, nil); got != "" {
		t.Fatalf("expected empty default, got %q", got)
	}

	seven, nine := 7, 9
	if got := pickInt(0, &seven, &nine); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	if got := pickInt(3, &seven, &nine); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}

	yes := true
	if !pickBool(false, &yes, nil) {
		t.Fatal("expected local true")
	}
	if pickBool(false, nil, nil) {
		t.Fatal("expected false default")
	}
}
