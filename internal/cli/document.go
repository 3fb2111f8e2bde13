package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/richedit/internal/platform"
	"github.com/dshills/richedit/internal/richtext"
)

// loadDocument reads markdown, or platform JSON when the file ends in .json.
func (a *app) loadDocument(path string) (*richtext.Text, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		rt, err := platform.Unmarshal(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		doc, err := platform.Import(rt,
			platform.WithLogger(a.logger),
			platform.WithStyleTable(a.resolver.Table()),
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return doc, nil
	}
	doc, err := a.parser().Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// writeJSON writes the platform JSON form of doc followed by a newline.
func writeJSON(w io.Writer, doc *richtext.Text) error {
	data, err := platform.Marshal(platform.Export(doc))
	if err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}
