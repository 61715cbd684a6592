// Package warriors embeds a small library of classic Redcode '94
// sources via go:embed, for demos and test fixtures.
package warriors

import "embed"

//go:embed *.red
var fs embed.FS

// Names lists the embedded warriors, in a stable order.
var Names = []string{"imp", "dwarf"}

// Source returns the raw Redcode source for a named embedded
// warrior. ok is false for an unknown name.
func Source(name string) (string, bool) {
	b, err := fs.ReadFile(name + ".red")
	if err != nil {
		return "", false
	}
	return string(b), true
}
