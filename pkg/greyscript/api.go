// Package greyscript carries the fixed GreyScript domain tables: the API
// allow-list, deprecation and rename records, version comparison and the
// script templates. Everything here is data plus pure functions.
package greyscript

import (
	"sort"
	"strings"
)

// LatestVersion is the most recent game version the tables were checked
// against. Version parameters default to it.
const LatestVersion = "0.9.0"

// APIFunctions is the allow-list of known GreyScript API call names.
// Detection is a substring membership scan, not parsing.
var APIFunctions = []string{
	"get_router",
	"get_shell",
	"get_switch",
	"get_connect_ip",
	"include_lib",
	"nslookup",
	"whois",
	"ping",
	"md5",
	"user_input",
	"active_user",
	"home_dir",
	"current_path",
	"parent_path",
	"format_columns",
	"clear_screen",
	"typeof",
	"launch",
	"mail_login",
	"wait",
	"time",
	"bitwise",
	"get_custom_object",
	"used_ports",
	"port_info",
	"scan_address",
}

// Deprecation records an API call that still works but is slated for
// removal from a given game version onward.
type Deprecation struct {
	Name        string
	Since       string
	Replacement string
}

// Deprecations lists API calls that emit warnings when the target version
// is at or past Since.
var Deprecations = []Deprecation{
	{Name: "get_connect_ip", Since: "0.8.0", Replacement: "router.local_ip"},
	{Name: "mail_login", Since: "0.9.0", Replacement: "service_mail.login"},
}

// RemovedAPIs maps symbols that no longer exist to their replacements.
// Hitting one of these is an error, not a warning.
var RemovedAPIs = map[string]string{
	"hash_md5":      "md5",
	"getshell":      "get_shell",
	"route_gateway": "get_router",
}

// DetectAPICalls returns the allow-list members that appear in code, in
// allow-list order. Duplicate occurrences report once.
func DetectAPICalls(code string) []string {
	var found []string
	for _, name := range APIFunctions {
		if strings.Contains(code, name) {
			found = append(found, name)
		}
	}
	return found
}

// Removal pairs a removed symbol with its replacement.
type Removal struct {
	Old         string
	Replacement string
}

// DetectRemoved returns the removed symbols that appear in code, with
// their replacements, sorted by symbol so reports are deterministic.
func DetectRemoved(code string) []Removal {
	var found []Removal
	for old, repl := range RemovedAPIs {
		if strings.Contains(code, old) {
			found = append(found, Removal{Old: old, Replacement: repl})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Old < found[j].Old })
	return found
}
