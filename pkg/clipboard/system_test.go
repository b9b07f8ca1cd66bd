package clipboard

import (
	"encoding/hex"
	"strings"
	"testing"
)

func TestDecodeHexData(t *testing.T) {
	html := "<p>Hello, clipboard!</p>"
	envelope := "«data HTML" + strings.ToUpper(hex.EncodeToString([]byte(html))) + "»"

	got, ok := decodeHexData(envelope)
	if !ok {
		t.Fatal("decodeHexData() ok = false")
	}
	if got != html {
		t.Errorf("decodeHexData() = %q, want %q", got, html)
	}
}

func TestDecodeHexData_WithLeadingNoise(t *testing.T) {
	// osascript output may carry whitespace around the envelope.
	html := "<b>x</b>"
	envelope := "  «data HTML" + hex.EncodeToString([]byte(html)) + "»\n"

	got, ok := decodeHexData(envelope)
	if !ok {
		t.Fatal("decodeHexData() ok = false")
	}
	if got != html {
		t.Errorf("decodeHexData() = %q, want %q", got, html)
	}
}

func TestDecodeHexData_Invalid(t *testing.T) {
	cases := []string{
		"",
		"plain text output",
		"«data HTML»",
		"«data HTMLZZZZ»", // not hex
	}
	for _, in := range cases {
		if _, ok := decodeHexData(in); ok {
			t.Errorf("decodeHexData(%q) ok = true, want false", in)
		}
	}
}

func TestRepairUTF8(t *testing.T) {
	valid := "fine text"
	if got := repairUTF8(valid); got != valid {
		t.Errorf("repairUTF8 mangled valid input: %q", got)
	}

	broken := string([]byte{'a', 0xff, 'b'})
	got := repairUTF8(broken)
	if got == broken {
		t.Error("repairUTF8 did not repair invalid byte")
	}
	if !strings.Contains(got, "a") || !strings.Contains(got, "b") {
		t.Errorf("repairUTF8 lost surrounding content: %q", got)
	}
}
