// Package tabmark converts rendered web pages into Markdown.
// It selects a region of a page, strips script and style nodes, renders the
// remaining markup through an ordered rule set, and joins multiple converted
// pages into one banner-delimited document.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, htmltomarkdown/).
package tabmark
