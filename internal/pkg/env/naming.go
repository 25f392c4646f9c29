package env

import (
	"strings"

	"github.com/umisama/go-regexpcache"

	"github.com/sfpd/picklist-dependency/internal/pkg/utils/errors"
)

const Prefix = "SFPD_"

type NamingConvention struct {
	prefix string
}

func NewNamingConvention(prefix string) *NamingConvention {
	return &NamingConvention{prefix: prefix}
}

// FlagToEnv converts flag name to ENV variable name
// for example "target-org" -> "SFPD_TARGET_ORG".
func (n *NamingConvention) FlagToEnv(flagName string) string {
	if len(flagName) == 0 {
		panic(errors.New("flag name cannot be empty"))
	}

	name := regexpcache.MustCompile(`[^A-Z0-9]+`).ReplaceAllString(strings.ToUpper(flagName), "_")
	return n.prefix + name
}

// Files returns ".env" files names in the order of precedence.
func Files() []string {
	// https://github.com/bkeepers/dotenv#what-other-env-files-can-i-use
	return []string{
		".env.local",
		".env",
	}
}
