// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Entry is one numbered song or section parsed from source text.
// IDs are assigned sequentially across a parse starting at 1, independent of
// the label the text declares.
type Entry struct {
	// ID is the sequential position of the entry within the parse.
	ID int `json:"id" yaml:"id"`

	// Label is the numeric heading declared by the source line ("12. ...").
	Label int `json:"label" yaml:"label"`

	// Name is the free-text title following the label.
	Name string `json:"name" yaml:"name"`

	// Verses lists the entry's verses in source order.
	Verses []Verse `json:"verses" yaml:"verses"`
}

// Verse is one content unit of an Entry.
type Verse struct {
	// SongID refers back to the owning Entry's ID.
	SongID int `json:"song_id" yaml:"song_id"`

	// ID is the verse's position within its entry, starting at 1.
	ID int `json:"id" yaml:"id"`

	// Content is the trimmed verse text.
	Content string `json:"content" yaml:"content"`
}
