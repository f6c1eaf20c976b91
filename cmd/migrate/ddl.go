package main

import (
	"strings"
)

// splitDDLStatements drops comment lines and splits content on semicolons.
func splitDDLStatements(content string) []string {
	var cleaned []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var result []string
	for _, stmt := range strings.Split(strings.Join(cleaned, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			result = append(result, stmt)
		}
	}
	return result
}

// createdObject returns "table:<name>" or "index:<name>" for CREATE TABLE and
// CREATE [UNIQUE] [NULL_FILTERED] INDEX statements.
func createdObject(stmt string) (string, bool) {
	fields := strings.Fields(stmt)
	if len(fields) < 3 || !strings.EqualFold(fields[0], "CREATE") {
		return "", false
	}

	i := 1
	for i < len(fields) && (strings.EqualFold(fields[i], "UNIQUE") || strings.EqualFold(fields[i], "NULL_FILTERED")) {
		i++
	}
	if i+1 >= len(fields) {
		return "", false
	}

	kind := strings.ToLower(fields[i])
	if kind != "table" && kind != "index" {
		return "", false
	}

	name := fields[i+1]
	if j := strings.IndexAny(name, "("); j >= 0 {
		name = name[:j]
	}
	return kind + ":" + strings.ToLower(strings.Trim(name, "`")), true
}

func existingObjects(ddl []string) map[string]struct{} {
	out := make(map[string]struct{}, len(ddl))
	for _, stmt := range ddl {
		if obj, ok := createdObject(stmt); ok {
			out[obj] = struct{}{}
		}
	}
	return out
}

// pendingStatements filters out CREATE statements for objects in existing.
// Other statements are always kept.
func pendingStatements(statements []string, existing map[string]struct{}) []string {
	var out []string
	for _, stmt := range statements {
		if obj, ok := createdObject(stmt); ok {
			if _, found := existing[obj]; found {
				continue
			}
		}
		out = append(out, stmt)
	}
	return out
}
