package greyscript

import (
	"strings"

	"golang.org/x/mod/semver"
)

// CompareVersions orders two game version strings numerically, so that
// "0.10.0" sorts after "0.8.0". Returns -1, 0 or +1 like strings.Compare.
// Strings that are not dotted versions fall back to lexicographic order,
// keeping the comparison total.
func CompareVersions(a, b string) int {
	va, vb := "v"+strings.TrimPrefix(a, "v"), "v"+strings.TrimPrefix(b, "v")
	if semver.IsValid(va) && semver.IsValid(vb) {
		return semver.Compare(va, vb)
	}
	return strings.Compare(a, b)
}

// VersionAtLeast reports whether version is at or past min.
func VersionAtLeast(version, min string) bool {
	return CompareVersions(version, min) >= 0
}
