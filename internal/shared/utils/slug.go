package utils

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	nonSlugRegex    = regexp.MustCompile(`[^a-z0-9-]+`)
	multiDashRegex  = regexp.MustCompile(`-+`)
)

// GenerateSlug derive slug từ tên curated list
// Pure function: cùng input luôn cho cùng output, không check trùng
func GenerateSlug(input string) string {
	// Step 1: Transliterate sang ASCII
	// "Amélie Poulain" → "Amelie Poulain", "Nguyễn Nhật Ánh" → "Nguyen Nhat Anh"
	ascii := unidecode.Unidecode(input)

	// Step 2: Lowercase
	lower := strings.ToLower(ascii)

	// Step 3: Whitespace runs → hyphen
	// "the   matrix" → "the-matrix"
	hyphenated := whitespaceRegex.ReplaceAllString(lower, "-")

	// Step 4: Remove special characters
	// Keep only: a-z, 0-9, hyphens
	cleaned := nonSlugRegex.ReplaceAllString(hyphenated, "")

	// Step 5: Remove multiple consecutive hyphens
	normalized := multiDashRegex.ReplaceAllString(cleaned, "-")

	// Step 6: Trim leading/trailing hyphens
	return strings.Trim(normalized, "-")
}
