package utilities

import "os"

// Exists reports if the file or folder at path can be stat'd
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
