package datauri

import (
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	b, err := Parse("data:image/png;base64,AAAA")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if b.MIMEType != "image/png" {
		t.Fatalf("MIMEType = %q, want image/png", b.MIMEType)
	}
	if len(b.Data) != 3 {
		t.Fatalf("len(Data) = %d, want 3", len(b.Data))
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	cases := map[string]error{
		"":                          ErrMalformed,
		"https://example.com/a.png": ErrMalformed,
		"data:image/png,AAAA":       ErrNotBase64,
		"data:image/png;base64":     ErrMalformed,
		"data:image/png;base64,":    ErrEmptyBody,
	}
	for in, want := range cases {
		if _, err := Parse(in); !errors.Is(err, want) {
			t.Errorf("Parse(%q) error = %v, want %v", in, err, want)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	s, err := Format("image/png", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}
	if !IsImage(s) {
		t.Fatalf("IsImage(%q) = false", s)
	}
	b, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if string(b.Data) != string([]byte{1, 2, 3}) {
		t.Fatalf("Data mismatch: %v", b.Data)
	}
}

func TestFormatRejectsInvalidMIME(t *testing.T) {
	for _, in := range []string{"png", "image/", "/png", "image/png/x", "image png"} {
		s, err := Format(in, []byte{1})
		if !errors.Is(err, ErrInvalidMIME) {
			t.Errorf("Format(%q) = %q, %v; want ErrInvalidMIME", in, s, err)
		}
	}
}

func TestFormatDefaultsAndParams(t *testing.T) {
	s, err := Format("", []byte{1})
	if err != nil || !strings.HasPrefix(s, "data:application/octet-stream;base64,") {
		t.Fatalf("Format(empty) = %q, %v", s, err)
	}
	s, err = Format("image/svg+xml; charset=utf-8", []byte("<svg/>"))
	if err != nil {
		t.Fatalf("Format with params error: %v", err)
	}
	b, err := Parse(s)
	if err != nil || b.MIMEType != "image/svg+xml" {
		t.Fatalf("Parse(%q) = %+v, %v", s, b, err)
	}
}

func TestExtension(t *testing.T) {
	if Extension("image/jpeg") != ".jpg" || Extension("image/png") != ".png" || Extension("x/y") != ".bin" {
		t.Fatal("unexpected extension mapping")
	}
}
