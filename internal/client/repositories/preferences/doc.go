// Package preferences persists small key/value settings in the local SQLite
// database: the chosen language code and the stored login session.
//
// Repository is the raw byte store; Store layers typed accessors on top.
// Get returns (nil, nil) for a missing key.
package preferences
