package util

import (
	"os"
	"strconv"
	"strings"
)

// ReadFileString reads a file and returns its contents with surrounding
// whitespace trimmed. Hwmon attribute files carry a trailing newline.
func ReadFileString(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// ReadInt64 reads a file holding a single decimal integer.
func ReadInt64(path string) (int64, error) {
	s, err := ReadFileString(path)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(s, 10, 64)
}

// ReadMilli reads an integer file scaled by 1000, as hwmon uses for
// temperatures (temp*_input is in millidegrees C).
func ReadMilli(path string) (float64, error) {
	v, err := ReadInt64(path)
	if err != nil {
		return 0, err
	}
	return float64(v) / 1000.0, nil
}

// ReadMicro reads an integer file scaled by 1e6, as hwmon uses for power
// and energy (power*_input is in microwatts).
func ReadMicro(path string) (float64, error) {
	v, err := ReadInt64(path)
	if err != nil {
		return 0, err
	}
	return float64(v) / 1e6, nil
}
