package ui

import (
	"sort"
	"strings"
)

const (
	maxEditDistance = 3
	maxSuggestions  = 3
)

// FindSimilar returns up to three candidates within edit distance 3 of
// target, closest first. Matching is case-insensitive; returned values
// keep their original spelling.
func FindSimilar(target string, candidates []string) []string {
	type scored struct {
		value    string
		distance int
	}

	var close []scored
	for _, candidate := range candidates {
		dist := LevenshteinDistance(strings.ToLower(target), strings.ToLower(candidate))
		if dist <= maxEditDistance {
			close = append(close, scored{value: candidate, distance: dist})
		}
	}

	sort.SliceStable(close, func(i, j int) bool {
		return close[i].distance < close[j].distance
	})

	out := make([]string, 0, maxSuggestions)
	for i := 0; i < len(close) && i < maxSuggestions; i++ {
		out = append(out, close[i].value)
	}
	return out
}

// LevenshteinDistance is the minimum number of single-character edits
// (insertions, deletions, substitutions) turning s1 into s2.
func LevenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
	}
	for i := 0; i <= len(s1); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}
	return matrix[len(s1)][len(s2)]
}
