//go:build windows

package handler

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// diskUsage reports available and total bytes on the volume holding dir.
func diskUsage(dir string) (free, total int64, err error) {
	ptr, err := windows.UTF16PtrFromString(dir)
	if err != nil {
		return 0, 0, fmt.Errorf("encode path %s: %w", dir, err)
	}

	var avail, size, totalFree uint64
	if err := windows.GetDiskFreeSpaceEx(ptr, &avail, &size, &totalFree); err != nil {
		return 0, 0, fmt.Errorf("GetDiskFreeSpaceEx %s: %w", dir, err)
	}
	return int64(avail), int64(size), nil
}
