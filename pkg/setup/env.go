package setup

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/fundmatch-dev/siteinfoextractor/pkg/utils"
)

const (
	openAIKeyVar    = "OPENAI_API_KEY"
	minAPIKeyLength = 40
)

// ValidateEnv loads .env (if present) and checks the environment needed for
// a run. The API key is only required when enrichment is enabled; any
// failure here should abort the run before the first network request.
func ValidateEnv(enrichEnabled bool, log *logrus.Logger) error {
	if err := godotenv.Load(); err != nil {
		// Absence of .env is fine, the environment may be set externally
		log.Debug("No .env file loaded")
	}

	if !enrichEnabled {
		log.Debug("Enrichment disabled, skipping API key validation")
		return nil
	}
	return validateAPIKey(os.Getenv(openAIKeyVar))
}

func validateAPIKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: %s is not set", utils.ErrConfigValidation, openAIKeyVar)
	}
	if !strings.HasPrefix(key, "sk-") && !strings.HasPrefix(key, "sk_") {
		return fmt.Errorf("%w: %s does not look like an OpenAI key (expected sk- or sk_ prefix)", utils.ErrConfigValidation, openAIKeyVar)
	}
	if len(key) < minAPIKeyLength {
		return fmt.Errorf("%w: %s is too short to be a valid key", utils.ErrConfigValidation, openAIKeyVar)
	}
	return nil
}
