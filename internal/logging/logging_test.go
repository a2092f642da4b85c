package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_JSONCarriesComponent(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "json", "serve")
	log.Info().Msg("listening")

	line := buf.String()
	if !strings.Contains(line, `"component":"serve"`) {
		t.Errorf("missing component field: %s", line)
	}
	if !strings.Contains(line, `"message":"listening"`) {
		t.Errorf("missing message: %s", line)
	}
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "text", "score")
	log.Info().Msg("scored")

	out := strings.TrimSpace(buf.String())
	if strings.HasPrefix(out, "{") {
		t.Errorf("text format produced JSON: %s", out)
	}
	if !strings.Contains(out, "score") {
		t.Errorf("missing component in console output: %s", out)
	}
}
