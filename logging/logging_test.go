package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewWithOutput(t *testing.T) {
	cases := []struct {
		name    string
		level   string
		format  string
		want    logrus.Level
		wantErr bool
	}{
		{name: "defaults", want: logrus.InfoLevel},
		{name: "debug json", level: "debug", format: "json", want: logrus.DebugLevel},
		{name: "upper case format", level: "warn", format: "TEXT", want: logrus.WarnLevel},
		{name: "bad level", level: "loud", wantErr: true},
		{name: "bad format", format: "xml", wantErr: true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", "")
			t.Setenv("LOG_FORMAT", "")
			log, err := NewWithOutput(&bytes.Buffer{}, c.level, c.format)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if log.GetLevel() != c.want {
				t.Fatalf("level = %v, want %v", log.GetLevel(), c.want)
			}
		})
	}
}

func TestEnvironmentFallback(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	var buf bytes.Buffer
	log, err := NewWithOutput(&buf, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log.GetLevel() != logrus.DebugLevel {
		t.Fatalf("level = %v, want debug", log.GetLevel())
	}

	log.WithField("state", "stun").Debug("boss: transition")
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("output is not json: %v", err)
	}
	if entry["state"] != "stun" || !strings.Contains(entry["msg"].(string), "transition") {
		t.Fatalf("unexpected entry %v", entry)
	}
}
