package main

import (
	"strconv"
	"strings"
)

func formatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', 3, 64)
}

func formatCutPoints(points []float64) string {
	if len(points) == 0 {
		return "none"
	}
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = formatSeconds(p)
	}
	return strings.Join(parts, ", ")
}
