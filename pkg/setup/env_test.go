package setup

import (
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestValidateEnv_DisabledSkipsKeyCheck(t *testing.T) {
	t.Setenv(openAIKeyVar, "")
	if err := ValidateEnv(false, testLogger()); err != nil {
		t.Errorf("unexpected error with enrichment disabled: %v", err)
	}
}

func TestValidateEnv_MissingKey(t *testing.T) {
	t.Setenv(openAIKeyVar, "")
	if err := ValidateEnv(true, testLogger()); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestValidateAPIKey(t *testing.T) {
	longKey := "sk-" + strings.Repeat("a", 48)

	tests := []struct {
		name  string
		key   string
		valid bool
	}{
		{"valid sk- key", longKey, true},
		{"valid sk_ key", "sk_" + strings.Repeat("b", 48), true},
		{"wrong prefix", "pk-" + strings.Repeat("a", 48), false},
		{"too short", "sk-short", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAPIKey(tt.key)
			if tt.valid && err != nil {
				t.Errorf("validateAPIKey(%q) = %v, want nil", tt.key, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("validateAPIKey(%q) = nil, want error", tt.key)
			}
		})
	}
}
