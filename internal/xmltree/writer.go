package xmltree

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"h2resconv/internal/errors"
)

const declaration = "<?xml version='1.0' encoding='utf-8'?>\n"

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"\r", "&#13;",
		"\n", "&#10;",
		"\t", "&#09;",
	)
)

// Write serializes the tree to w: XML declaration, UTF-8, two-space
// indentation, childless textless elements self-closed. The writer
// performs no structural changes; trees must already satisfy the
// full-day invariant when they reach it.
func Write(w io.Writer, root *Node) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(declaration); err != nil {
		return err
	}
	writeNode(bw, root, 0)
	return bw.Flush()
}

// WriteFile serializes the tree to path, creating parent directories.
func WriteFile(path string, root *Node) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create output directory", err).
			WithContext("path", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create output file", err).
			WithContext("path", path)
	}
	if err := Write(f, root); err != nil {
		f.Close()
		return errors.NewStorageError("failed to write output file", err).
			WithContext("path", path)
	}
	if err := f.Close(); err != nil {
		return errors.NewStorageError("failed to close output file", err).
			WithContext("path", path)
	}
	return nil
}

func writeNode(bw *bufio.Writer, n *Node, depth int) {
	pad := strings.Repeat("  ", depth)
	bw.WriteString(pad)
	bw.WriteByte('<')
	bw.WriteString(n.Tag)
	for _, a := range n.Attrs {
		bw.WriteByte(' ')
		bw.WriteString(a.Name)
		bw.WriteString(`="`)
		bw.WriteString(attrEscaper.Replace(a.Value))
		bw.WriteByte('"')
	}

	switch {
	case len(n.Children) == 0 && n.Text == "":
		bw.WriteString(" />")
	case len(n.Children) == 0:
		bw.WriteByte('>')
		bw.WriteString(textEscaper.Replace(n.Text))
		bw.WriteString("</")
		bw.WriteString(n.Tag)
		bw.WriteByte('>')
	default:
		bw.WriteByte('>')
		if n.Text != "" {
			bw.WriteString(textEscaper.Replace(n.Text))
		}
		bw.WriteByte('\n')
		for _, c := range n.Children {
			writeNode(bw, c, depth+1)
			bw.WriteByte('\n')
		}
		bw.WriteString(pad)
		bw.WriteString("</")
		bw.WriteString(n.Tag)
		bw.WriteByte('>')
	}
}
