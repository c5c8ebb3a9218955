package configloader

import (
	"os"
	"strings"

	"github.com/yaklabco/cssfmt/pkg/config"
)

// EnvVarPrefix is the prefix for all cssfmt environment variables.
const EnvVarPrefix = "CSSFMT_"

// envSource labels values read from the environment in diagnostics.
const envSource = "environment"

// loadFromEnv collects CSSFMT_* variables from environ, a list of KEY=value
// pairs in the format of os.Environ. A nil environ reads the process
// environment. Empty values are skipped.
func loadFromEnv(environ []string) settings {
	if environ == nil {
		environ = os.Environ()
	}

	values := map[string]any{}
	for _, entry := range environ {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || value == "" {
			continue
		}
		suffix, found := strings.CutPrefix(name, EnvVarPrefix)
		if !found || suffix == "" {
			continue
		}
		values[strings.ToLower(suffix)] = value
	}

	return newSettings(values, envSource)
}

// EnvVarName returns the environment variable that sets the option key.
func EnvVarName(key string) string {
	return EnvVarPrefix + strings.ToUpper(key)
}

// ListEnvVars returns every supported environment variable with the
// description of the option it sets.
func ListEnvVars() map[string]string {
	options := config.Options()
	vars := make(map[string]string, len(options))
	for _, option := range options {
		vars[EnvVarName(option.Key)] = option.Description
	}
	return vars
}
