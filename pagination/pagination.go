package pagination

const (
	DefaultSize = 20
	MaxSize     = 100
)

// Clamp normalizes 1-based page and page-size values.
func Clamp(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > MaxSize {
		size = DefaultSize
	}
	return page, size
}

// Offset converts a clamped page/size pair to a row offset.
func Offset(page, size int) int {
	return (page - 1) * size
}
