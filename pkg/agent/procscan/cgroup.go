package procscan

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const containerIDLen = 32

var cgroupPathCache = expirable.NewLRU[string, string](4096, nil, 10*time.Minute)

// containerIDFromCgroupPath extracts the 32-hex-char container id from a
// cgroup path. Recognized layouts:
//
//	/docker/<64-hex>
//	/kubepods/<qos-class>/<pod-id>/<container-id>
//
// Returns "" when the path does not belong to a recognized container scope.
func containerIDFromCgroupPath(path string) string {
	if id, ok := cgroupPathCache.Get(path); ok {
		return id
	}
	id := parseContainerID(path)
	cgroupPathCache.Add(path, id)
	return id
}

func parseContainerID(path string) string {
	if rest, ok := strings.CutPrefix(path, "/docker/"); ok {
		return leafContainerID(rest)
	}
	if strings.HasPrefix(path, "/kubepods/") {
		// the container id is whatever follows the fourth slash
		parts := strings.SplitN(path, "/", 5)
		if len(parts) < 5 {
			return ""
		}
		return leafContainerID(parts[4])
	}
	return ""
}

func leafContainerID(s string) string {
	if len(s) < containerIDLen {
		return ""
	}
	return s[:containerIDLen]
}
