// Package atomicwrite provides functions to write files atomically.
package atomicwrite

import (
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Permissions given to files that Write creates.
const defaultPerms os.FileMode = 0644

// Write atomically overwrites the file at filename with the content written by the
// given function.
// The file is created with permissions 0644 if it doesn't already exist; otherwise its
// permissions are preserved.
func Write(filename string, contentWriter func(io.Writer) error) error {
	perms := defaultPerms
	if info, err := os.Stat(filename); err == nil {
		perms = info.Mode().Perm()
	} else if !os.IsNotExist(err) {
		return errors.Wrap(err, errString(filename))
	}
	tf, err := ioutil.TempFile(filepath.Dir(filename), ".rgbcss-atomic-write")
	if err != nil {
		return errors.Wrap(err, errString(filename))
	}
	name := tf.Name()
	fail := func(err error) error {
		os.Remove(name)
		return errors.Wrap(err, errString(filename))
	}
	if err = contentWriter(tf); err != nil {
		tf.Close()
		return fail(err)
	}
	if err = tf.Chmod(perms); err != nil {
		tf.Close()
		return fail(err)
	}
	if err = tf.Close(); err != nil {
		return fail(err)
	}
	if err = os.Rename(name, filename); err != nil {
		return fail(err)
	}
	return nil
}

func errString(filename string) string { return "atomic write to " + filename + " failed" }
