//go:build !unix

package paths

// checkWritable is a no-op on platforms without a cheap
// effective-permission probe; an unwritable destination surfaces at the
// first actual write instead.
func checkWritable(canonical string) error {
	return nil
}
