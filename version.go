package gonigmo

// version is the release of this module.
const version = "0.3.0"

// Version returns the engine version string.
func Version() string {
	return version
}
