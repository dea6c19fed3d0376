package report

import (
	"io"
	"os"
	"sync"

	"github.com/goccy/go-json"

	"github.com/prettymuchbryce/typocheck/internal/typos"
)

// JSON writes every message as one JSON object per line.
//
// Objects are tagged with "type" (the snake_case variant name). A message's
// context is flattened into the object as "path" and, for file contexts,
// "line_num". Typo buffers are never written.
type JSON struct {
	mu sync.Mutex
	w  io.Writer
}

// NewJSON creates a JSON reporter writing to stdout.
func NewJSON() *JSON {
	return NewJSONWithWriter(os.Stdout)
}

// NewJSONWithWriter creates a JSON reporter writing to w.
func NewJSONWithWriter(w io.Writer) *JSON {
	return &JSON{w: w}
}

type binaryFileRecord struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

type fileRecord struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

type parseRecord struct {
	Type    string    `json:"type"`
	Path    *string   `json:"path,omitempty"`
	LineNum *int      `json:"line_num,omitempty"`
	Kind    ParseKind `json:"kind"`
	Data    string    `json:"data"`
}

type typoRecord struct {
	Type        string       `json:"type"`
	Path        *string      `json:"path,omitempty"`
	LineNum     *int         `json:"line_num,omitempty"`
	ByteOffset  int          `json:"byte_offset"`
	Typo        string       `json:"typo"`
	Corrections typos.Status `json:"corrections"`
}

type errorRecord struct {
	Type    string  `json:"type"`
	Path    *string `json:"path,omitempty"`
	LineNum *int    `json:"line_num,omitempty"`
	Msg     string  `json:"msg"`
}

// Report implements Reporter.
func (r *JSON) Report(m Message) error {
	var record any
	switch m := m.(type) {
	case BinaryFile:
		record = binaryFileRecord{Type: "binary_file", Path: m.Path}
	case Typo:
		path, lineNum := flattenContext(m.Context)
		record = typoRecord{
			Type:        "typo",
			Path:        path,
			LineNum:     lineNum,
			ByteOffset:  m.ByteOffset,
			Typo:        m.Typo,
			Corrections: m.Corrections,
		}
	case File:
		record = fileRecord{Type: "file", Path: m.Path}
	case Parse:
		path, lineNum := flattenContext(m.Context)
		record = parseRecord{Type: "parse", Path: path, LineNum: lineNum, Kind: m.Kind, Data: m.Data}
	case Error:
		path, lineNum := flattenContext(m.Context)
		record = errorRecord{Type: "error", Path: path, LineNum: lineNum, Msg: m.Msg}
	}

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	r.mu.Lock()
	defer r.mu.Unlock()
	_, err = r.w.Write(data)
	return err
}

// flattenContext returns the fields c contributes to a JSON record.
func flattenContext(c Context) (path *string, lineNum *int) {
	switch c := c.(type) {
	case FileContext:
		return &c.Path, &c.LineNum
	case PathContext:
		return &c.Path, nil
	}
	return nil, nil
}
