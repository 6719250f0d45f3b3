package token

import "strconv"

func parseUint(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
