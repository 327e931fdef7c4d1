//go:build darwin

package internal

import (
	"os/exec"
	"strings"
)

// detectSystemLocale checks the environment first, then the AppleLocale
// preference ("en_US", "sv_SE").
func detectSystemLocale() string {
	if locale := localeFromEnv("LC_ALL", "LC_MONETARY", "LANG"); locale != "" {
		return locale
	}

	out, err := exec.Command("defaults", "read", "-g", "AppleLocale").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
