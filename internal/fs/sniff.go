package fs

import "github.com/gabriel-vasile/mimetype"

// SniffLen is how many leading bytes are inspected to classify content.
const SniffLen = 3072

// IsBinaryContent reports whether data, the start of some content, is binary.
// Empty content is text. Anything mimetype places under text/plain
// (JSON, XML, HTML, CSV, source code) is text too.
func IsBinaryContent(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return false
		}
	}
	return true
}
