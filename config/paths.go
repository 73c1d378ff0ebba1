package config

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrInputNotFound is returned when the URL list does not exist.
	ErrInputNotFound = errors.New("input file not found")
	// ErrInputEmpty is returned when the URL list has zero bytes.
	ErrInputEmpty = errors.New("input file is empty")
)

// OutputDirError reports an output folder that cannot receive screenshots
type OutputDirError struct {
	Dir    string
	Reason string
	Err    error
}

func (e *OutputDirError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("output folder %s %s: %v", e.Dir, e.Reason, e.Err)
	}
	return fmt.Sprintf("output folder %s %s", e.Dir, e.Reason)
}

func (e *OutputDirError) Unwrap() error {
	return e.Err
}

// CheckInputFile verifies the URL list exists, is a regular file and is not empty.
// A missing file wraps both ErrInputNotFound and fs.ErrNotExist.
func CheckInputFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %w", ErrInputNotFound, err)
		}
		return fmt.Errorf("error checking input file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("input file %s is a directory", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: %s", ErrInputEmpty, path)
	}
	return nil
}

// DirStatus describes what will happen to the output folder, for display
func DirStatus(dir string) string {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return "(exists)"
	}
	return "(will be created)"
}

// PrepareOutputDir creates the output folder when needed and checks it is a
// writable directory. created reports whether the folder was made here.
func PrepareOutputDir(dir string) (created bool, err error) {
	if _, err := os.Stat(dir); err != nil {
		if err := EnsureOutputDir(dir); err != nil {
			return false, &OutputDirError{Dir: dir, Reason: "could not be created", Err: err}
		}
		created = true
	}

	info, err := os.Stat(dir)
	if err != nil {
		return created, &OutputDirError{Dir: dir, Reason: "could not be checked", Err: err}
	}
	if !info.IsDir() {
		return created, &OutputDirError{Dir: dir, Reason: "is not a directory"}
	}
	if err := checkWritable(dir); err != nil {
		return created, &OutputDirError{Dir: dir, Reason: "is not writable", Err: err}
	}
	return created, nil
}

// EnsureOutputDir ensures the output directory exists
func EnsureOutputDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
