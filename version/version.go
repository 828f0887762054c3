package version

import "fmt"

var (
	Version string
	Commit  string
)

// String returns the build identity in one line, for logs and the status page.
func String() string {
	v := Version
	if v == "" {
		v = "dev"
	}
	if Commit == "" {
		return v
	}
	return fmt.Sprintf("%s (%s)", v, Commit)
}

func PrintVersion() {
	fmt.Printf("Conntrail version: %s\n", String())
}
