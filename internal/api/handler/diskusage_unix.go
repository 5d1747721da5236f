//go:build !windows

package handler

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// diskUsage reports available and total bytes on the filesystem holding dir.
func diskUsage(dir string) (free, total int64, err error) {
	var st unix.Statfs_t
	if err := unix.Statfs(dir, &st); err != nil {
		return 0, 0, fmt.Errorf("statfs %s: %w", dir, err)
	}
	bsize := int64(st.Bsize)
	return int64(st.Bavail) * bsize, int64(st.Blocks) * bsize, nil
}
