package search

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const dumpIndent = "   "

// WriteTo writes the subtree one node per line, indented three spaces per
// level, as "move: score -> White's move".
func (n *Node) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)
	n.dump(bw, 0)
	err := bw.Flush()
	return cw.n, err
}

func (n *Node) String() string {
	var sb strings.Builder
	_, _ = n.WriteTo(&sb)
	return sb.String()
}

func (n *Node) dump(w *bufio.Writer, depth int) {
	mover := "Black"
	if n.WhiteToMove() {
		mover = "White"
	}
	fmt.Fprintf(w, "%s%s: %s -> %s's move\n",
		strings.Repeat(dumpIndent, depth), n.Move(), strconv.FormatFloat(n.score, 'f', -1, 64), mover)
	for _, child := range n.children {
		child.dump(w, depth+1)
	}
}

// WriteFile dumps the tree to path, zstd-compressed when path ends in ".zst".
func WriteFile(path string, root *Node) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if !strings.HasSuffix(path, ".zst") {
		_, err = root.WriteTo(f)
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return err
	}
	if _, err = root.WriteTo(enc); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// ReadFile returns the text of a dump written by WriteFile.
func ReadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return "", err
		}
		defer dec.Close()
		r = dec
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
