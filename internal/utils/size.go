package utils

import (
	"fmt"
	"strconv"
	"strings"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count for humans, e.g. 1536 -> "1.5 KB".
func FormatSize(bytes int64) string {
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}

	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}

	num := strconv.FormatFloat(size, 'f', 2, 64)
	num = strings.TrimRight(strings.TrimRight(num, "0"), ".")
	return num + " " + sizeUnits[unit]
}
