//go:build !windows && !darwin

package internal

// detectSystemLocale reads the locale from the environment. LC_MONETARY wins
// because it is the category that governs currency formatting.
func detectSystemLocale() string {
	return localeFromEnv("LC_MONETARY", "LC_ALL", "LANG")
}
