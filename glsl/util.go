package glsl

import "strconv"

func itoa(n int) string { return strconv.Itoa(n) }

func ftoa(f float32) string { return strconv.FormatFloat(float64(f), 'f', 6, 32) }
