package utils

import "strings"

// WordCount đếm số token không rỗng phân tách bởi whitespace
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// JoinNonEmpty nối các phần tử khác rỗng bằng sep
func JoinNonEmpty(parts []string, sep string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
