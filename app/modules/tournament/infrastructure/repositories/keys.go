package tournamentdb

import (
	"fmt"
	"strings"
)

// Key namespace within the key-value store:
//
//	tournament:<id>                 JSON config
//	tournament:rolls:<id>           hash of userId -> JSON roll
//	tournament:round:<id>:<number>  JSON round record
//	tournament:stats:<id>           JSON stats snapshot
const (
	configPrefix = "tournament:"
	rollsPrefix  = "tournament:rolls:"
	roundPrefix  = "tournament:round:"
	statsPrefix  = "tournament:stats:"
)

func configKey(id string) string { return configPrefix + id }

func rollsKey(id string) string { return rollsPrefix + id }

func roundKey(id string, round int) string {
	return fmt.Sprintf("%s%s:%d", roundPrefix, id, round)
}

func statsKey(id string) string { return statsPrefix + id }

// isConfigKey reports whether a scanned key names a config record rather
// than one of the sub-namespaces sharing the tournament: prefix.
func isConfigKey(key string) bool {
	if !strings.HasPrefix(key, configPrefix) {
		return false
	}
	rest := key[len(configPrefix):]
	return !strings.Contains(rest, ":")
}
