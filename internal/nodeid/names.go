// internal/nodeid/names.go
package nodeid

import (
	"fmt"
	"regexp"
	"strings"
)

var invalidNameChars = regexp.MustCompile(`[^-\w.]`)

var (
	filenameReplacer = strings.NewReplacer(" ", "_", ":", "__", "/", "_")
	varNameReplacer  = strings.NewReplacer(" ", "_", ":", "__", "/", "_", "-", "_")
)

// ValidFilename converts name into a string usable as a file name.
func ValidFilename(name string) (string, error) {
	return validName(name, filenameReplacer)
}

// ValidName converts name into a string usable as a template variable.
func ValidName(name string) (string, error) {
	return validName(name, varNameReplacer)
}

func validName(name string, r *strings.Replacer) (string, error) {
	s := r.Replace(strings.TrimSpace(name))
	s = invalidNameChars.ReplaceAllString(s, "")
	if s == "" || s == "." || s == ".." {
		return "", fmt.Errorf("could not derive a valid name from %q", name)
	}
	return s, nil
}
