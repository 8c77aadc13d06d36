package utils

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/alpacax/vpnexclude/pkg/version"
	"github.com/shirou/gopsutil/v4/host"
)

var (
	userAgentOnce sync.Once
	platformInfo  string
)

// GetUserAgent returns "<name>/<version> (<platform> <platform version>; <arch>)".
// The host lookup happens once per process.
func GetUserAgent(name string) string {
	userAgentOnce.Do(func() {
		platformInfo = runtime.GOOS
		if info, err := host.Info(); err == nil && info.Platform != "" {
			platformInfo = fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion)
		}
	})
	return fmt.Sprintf("%s/%s (%s; %s)", name, version.Version, platformInfo, runtime.GOARCH)
}
