// Package command loads and searches command documentation stored as
// Markdown files. Each file's lower-cased base name becomes its lookup key;
// file content is read verbatim, with the first blank-line-separated
// paragraph serving as the summary shown to users.
//
// Lookup is deliberately cheap: Get is an exact case-insensitive match and
// FindBestMatch is a first-substring-match heuristic over the load order,
// not a ranked search. Refresh reloads the directory on demand; Watch keeps
// the set current automatically when the directory changes.
package command
