package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_TagsServiceAndComponent(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	Init(Options{Level: "debug", Service: "dashboard", Output: &buf})

	log := For("session")
	log.Info().Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json log line: %v (%q)", err, buf.String())
	}
	if entry["service"] != "dashboard" {
		t.Fatalf("expected service field, got %v", entry["service"])
	}
	if entry["component"] != "session" {
		t.Fatalf("expected component field, got %v", entry["component"])
	}
	if entry["message"] != "hello" {
		t.Fatalf("unexpected message: %v", entry["message"])
	}
}

func TestInit_OnlyFirstCallApplies(t *testing.T) {
	Reset()
	defer Reset()

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second})

	l := Get()
	l.Info().Msg("x")
	if first.Len() == 0 || second.Len() != 0 {
		t.Fatalf("expected only the first writer to receive output")
	}
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	Get()
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
