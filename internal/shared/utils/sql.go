package utils

import (
	"strings"
)

// JoinWithAnd joins a slice of strings with AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// likeEscaper escape các ký tự đặc biệt của LIKE/ILIKE (dùng với ESCAPE '\')
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern trả về pattern "%term%" cho ILIKE, term được match literal
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
