// Package clipper turns arbitrary URLs (web articles, videos, social posts)
// into normalized, storable clips: a title, a body of extracted text, and
// structured metadata.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, exec/, youtube/).
// The extraction pipeline that wires them together lives in pipeline/.
package clipper
