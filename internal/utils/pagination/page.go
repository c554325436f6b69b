package pagination

// Page returns the pageNumber-th window of pageSize items from seq.
// Page numbers start at 1. A page past the end of seq, or a non-positive
// pageSize or pageNumber, yields an empty slice rather than an error.
func Page[T any](seq []T, pageSize, pageNumber int) []T {
	if pageSize <= 0 || pageNumber <= 0 {
		return []T{}
	}
	start := (pageNumber - 1) * pageSize
	if start >= len(seq) {
		return []T{}
	}
	end := start + pageSize
	if end > len(seq) {
		end = len(seq)
	}
	return seq[start:end]
}
