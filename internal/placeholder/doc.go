// Package placeholder finds and substitutes <%NAME%> tokens. NAME is one or
// more ASCII word characters. There is no escape syntax: every <%NAME%> is a
// token, and a token whose name has no value renders as the empty string.
package placeholder
