package greyscript

import (
	"fmt"
	"sort"
)

// ScriptType enumerates the fixed set of script templates.
const (
	ScriptPortScanner     = "port_scanner"
	ScriptPasswordCracker = "password_cracker"
	ScriptFileBrowser     = "file_browser"
	ScriptCustom          = "custom"
)

// NoDescription is interpolated into the custom template when the caller
// supplies none.
const NoDescription = "No description provided"

var scriptTypes = map[string]bool{
	ScriptPortScanner:     true,
	ScriptPasswordCracker: true,
	ScriptFileBrowser:     true,
	ScriptCustom:          true,
}

// ScriptTypes returns the declared script types, sorted.
func ScriptTypes() []string {
	out := make([]string, 0, len(scriptTypes))
	for t := range scriptTypes {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// IsScriptType reports whether t is one of the declared script types.
func IsScriptType(t string) bool { return scriptTypes[t] }

const portScannerTemplate = `// Port scanner
// Target game version: %s

router = get_router
if not router then
    print("No router found")
    exit("aborting")
end if

print("Scanning " + router.public_ip)
ports = router.used_ports
for port in ports
    info = router.port_info(port)
    state = "closed"
    if port.is_closed == false then state = "open"
    print(port.port_number + "	" + state + "	" + info)
end for
`

const passwordCrackerTemplate = `// Password cracker
// Target game version: %s

crypto = include_lib("/lib/crypto.so")
if not crypto then
    print("crypto.so not found")
    exit("aborting")
end if

target = user_input("Encrypted password: ")
result = crypto.decipher(target)
if result then
    print("Cracked: " + result)
else
    print("Could not crack the password")
end if
`

const fileBrowserTemplate = `// File browser
// Target game version: %s

shell = get_shell
computer = shell.host_computer
folder = computer.File(current_path)

print(format_columns("TYPE NAME SIZE"))
for file in folder.get_folders + folder.get_files
    kind = "file"
    if file.is_folder then kind = "dir"
    print(format_columns(kind + " " + file.name + " " + file.size))
end for
`

const customTemplate = `// Custom script
// Description: %s
// Target game version: %s

// TODO: implement the script described above
print("not implemented")
`

// Template renders the template for scriptType with gameVersion
// interpolated. description is only used by the custom template and
// defaults to NoDescription when empty. Output is a pure function of the
// inputs. Unknown script types return ok=false.
func Template(scriptType, gameVersion, description string) (string, bool) {
	switch scriptType {
	case ScriptPortScanner:
		return fmt.Sprintf(portScannerTemplate, gameVersion), true
	case ScriptPasswordCracker:
		return fmt.Sprintf(passwordCrackerTemplate, gameVersion), true
	case ScriptFileBrowser:
		return fmt.Sprintf(fileBrowserTemplate, gameVersion), true
	case ScriptCustom:
		if description == "" {
			description = NoDescription
		}
		return fmt.Sprintf(customTemplate, description, gameVersion), true
	default:
		return "", false
	}
}
