package pypackaging

import "fmt"

// ExtensionModuleFilter denotes how aggressively extension modules are
// included when resolving a Python distribution's extension variants.
type ExtensionModuleFilter int

const (
	// ExtensionModuleFilterMinimal includes only extensions the interpreter
	// cannot function without.
	ExtensionModuleFilterMinimal ExtensionModuleFilter = iota

	// ExtensionModuleFilterAll includes every available extension.
	ExtensionModuleFilterAll

	// ExtensionModuleFilterNoLibraries includes extensions that do not link
	// against additional libraries.
	ExtensionModuleFilterNoLibraries

	// ExtensionModuleFilterNoGPL includes extensions that do not carry
	// copyleft licensing. In the absence of licensing evidence an extension
	// is assumed copyleft and excluded.
	ExtensionModuleFilterNoGPL
)

// ParseExtensionModuleFilter parses the textual form of a filter.
//
// Accepted literals are "minimal", "all", "no-libraries" and "no-gpl". Any
// other input returns an *InvalidFilterValueError.
func ParseExtensionModuleFilter(value string) (ExtensionModuleFilter, error) {
	switch value {
	case "minimal":
		return ExtensionModuleFilterMinimal, nil
	case "all":
		return ExtensionModuleFilterAll, nil
	case "no-libraries":
		return ExtensionModuleFilterNoLibraries, nil
	case "no-gpl":
		return ExtensionModuleFilterNoGPL, nil
	default:
		return 0, &InvalidFilterValueError{Value: value}
	}
}

// String returns the canonical literal for the filter.
func (f ExtensionModuleFilter) String() string {
	switch f {
	case ExtensionModuleFilterMinimal:
		return "minimal"
	case ExtensionModuleFilterAll:
		return "all"
	case ExtensionModuleFilterNoLibraries:
		return "no-libraries"
	case ExtensionModuleFilterNoGPL:
		return "no-gpl"
	default:
		panic(fmt.Sprintf("unknown extension module filter %d", int(f)))
	}
}
