//go:build !unix

package config

import "os"

// checkWritable probes the folder with a temporary file where access(2) is unavailable
func checkWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".shotlist-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
