package db

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike neutralises LIKE wildcards in user input so a search term is
// matched literally. Both MySQL and Postgres use backslash as the default
// escape character.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
