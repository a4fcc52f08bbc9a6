package prompt

import (
	"bytes"
	"strings"
	"testing"
)

func TestIntInRangeAcceptsValue(t *testing.T) {
	var out bytes.Buffer
	p := NewWithIO(strings.NewReader("7\n"), &out)

	got, err := p.IntInRange("Days to include", 1, 31, 1)
	if err != nil {
		t.Fatalf("IntInRange: %v", err)
	}
	if got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
	if !strings.Contains(out.String(), "[1-31, default 1]") {
		t.Errorf("prompt text missing range hint: %q", out.String())
	}
}

func TestIntInRangeEmptyUsesDefault(t *testing.T) {
	var out bytes.Buffer
	p := NewWithIO(strings.NewReader("\n"), &out)

	got, err := p.IntInRange("Days to include", 1, 31, 1)
	if err != nil {
		t.Fatalf("IntInRange: %v", err)
	}
	if got != 1 {
		t.Fatalf("got %d, want default 1", got)
	}
}

func TestIntInRangeEOFUsesDefault(t *testing.T) {
	var out bytes.Buffer
	p := NewWithIO(strings.NewReader(""), &out)

	got, err := p.IntInRange("Days to include", 1, 31, 3)
	if err != nil {
		t.Fatalf("IntInRange: %v", err)
	}
	if got != 3 {
		t.Fatalf("got %d, want default 3", got)
	}
}

func TestIntInRangeReasksOnBadInput(t *testing.T) {
	var out bytes.Buffer
	p := NewWithIO(strings.NewReader("forty\n99\n14\n"), &out)

	got, err := p.IntInRange("Days to include", 1, 31, 1)
	if err != nil {
		t.Fatalf("IntInRange: %v", err)
	}
	if got != 14 {
		t.Fatalf("got %d, want 14", got)
	}
	if n := strings.Count(out.String(), "Please enter a whole number"); n != 2 {
		t.Errorf("expected 2 correction messages, saw %d in %q", n, out.String())
	}
}

func TestSecretFallsBackToLineRead(t *testing.T) {
	var out bytes.Buffer
	p := NewWithIO(strings.NewReader("s3cret-key\n"), &out)

	got, err := p.Secret("Enter your Meraki API key")
	if err != nil {
		t.Fatalf("Secret: %v", err)
	}
	if got != "s3cret-key" {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(out.String(), "Enter your Meraki API key:") {
		t.Errorf("label missing from output: %q", out.String())
	}
}
