// Package fs provides the filesystem seam used for snapshot files.
//
//   - [FileSystem]: the few operations snapshot files need
//   - [LocalFS]: the os-backed implementation, exposed as [Default]
//   - [FaultyFS]: a wrapper that injects write, sync and rename failures
//
// [WriteAtomic] writes a file under a temporary name, syncs it and renames it
// into place, so a reader sees either the previous file or the complete new
// one:
//
//	err := fs.WriteAtomic(fs.Default, path, func(w io.Writer) error {
//	    _, err := snapshot.Write[int](w, d.Begin(), d.End())
//	    return err
//	})
package fs
