package numberutil

func AbsInt64(x int64) int64 {
	if x < 0 {
		return -x
	}

	return x
}

func MinInt64(a, b int64) int64 {
	if a < b {
		return a
	}

	return b
}
