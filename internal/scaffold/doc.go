// Package scaffold scans a project template for <%NAME%> variables and copies
// it to a destination, interpolating variables in both file paths and file
// contents. Files that already exist at the destination are never
// overwritten, so repeated runs only fill in what is missing.
//
// All filesystem access goes through afero, which lets dry runs execute the
// real copy against an in-memory overlay.
package scaffold
