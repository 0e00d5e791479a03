// Package jsonfile implements storage.CatalogStore as a single JSON document.
//
// The document has four top-level keys: projects (in processing order),
// supervisors (in first-seen order), tags (sorted) and metadata. It is
// indented with two spaces and keeps Cyrillic text unescaped so it can be
// read and diffed by hand.
//
// Older documents that store tags or supervisors as objects keyed by name
// are accepted on load and rewritten in the list form on the next save.
package jsonfile
