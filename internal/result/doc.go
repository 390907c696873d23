// Package result holds lookup result rows and renders them.
//
// A Row is an ordered list of (column, text value) fields in projection
// order. A Set concatenates rows from every predicate a lookup ran, in
// evaluation order, without deduplication: a hash lookup may legitimately
// return the same stored row twice when both the list path and a digest
// column match it.
//
// Renderers:
//   - WriteText: "---- Row ----" followed by "key: value" lines
//   - WriteJSON: a JSON array of objects with string values, keys in field order
//   - WriteJSONFile: WriteJSON into <dir>/<SanitizeName(query)>.json
package result
