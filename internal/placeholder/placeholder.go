package placeholder

import "regexp"

// Pattern matches a single placeholder and captures its name.
var Pattern = regexp.MustCompile(`<%(\w+)%>`)

// Names returns the name of every placeholder in data, in order of
// appearance. Duplicates are kept.
func Names(data []byte) []string {
	matches := Pattern.FindAllSubmatch(data, -1)
	if len(matches) == 0 {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, string(m[1]))
	}
	return names
}

// Interpolate replaces each placeholder in data with its value from values.
// Unmapped names are replaced with nothing.
func Interpolate(data []byte, values map[string]string) []byte {
	return Pattern.ReplaceAllFunc(data, func(token []byte) []byte {
		return []byte(values[nameOf(string(token))])
	})
}

// InterpolateString is Interpolate for strings.
func InterpolateString(s string, values map[string]string) string {
	return Pattern.ReplaceAllStringFunc(s, func(token string) string {
		return values[nameOf(token)]
	})
}

// nameOf strips the "<%" and "%>" delimiters from a matched token.
func nameOf(token string) string {
	return token[2 : len(token)-2]
}
