package wishlists

import (
	"strings"

	pkgerrors "github.com/angelmondragon/bikewish/pkg/errors"
)

const suggestionsKey = "suggestions"

// Suggestions extracts the similarly named wishlists attached to a NOT_FOUND
// error returned by GetByName.
func Suggestions(err error) []string {
	typed := pkgerrors.As(err)
	if typed == nil {
		return nil
	}
	details, ok := typed.Details().(map[string]any)
	if !ok {
		return nil
	}
	names, _ := details[suggestionsKey].([]string)
	return names
}

// similarNames returns the names containing query, ignoring case.
func similarNames(query string, names []string) []string {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}
	out := []string{}
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), needle) {
			out = append(out, name)
		}
	}
	return out
}
