package loader

import (
	"io/fs"
	"os"
)

// VirtualFS is the filesystem a Parser reads external schema files through.
// Narrowed from the teacher lineage's system.VirtualFS (a localization file
// abstraction that also supports writes) to read-only access, since this
// module only ever reads bundler-referenced files and never writes one.
type VirtualFS interface {
	fs.FS
}

// OSFileSystem is the default VirtualFS, reading directly from the host
// filesystem.
type OSFileSystem struct{}

var _ VirtualFS = OSFileSystem{}

func (OSFileSystem) Open(name string) (fs.File, error) {
	return os.Open(name) //nolint:gosec
}
