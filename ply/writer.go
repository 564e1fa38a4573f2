package ply

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/cartolab/plymesh/compress"
)

// WriteFile writes the model to a file in the model's current format.
// Compressed output is selected by extension (see the compress package).
// Writing is a pure read of the model; the file is open for the duration of
// this call only.
func WriteFile(path string, m *Model) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	var stream io.Writer = f
	var closeCodec func() error
	if codec := compress.ForPath(path); codec != nil {
		wc, err := codec.NewWriter(f)
		if err != nil {
			f.Close()
			return fmt.Errorf("create %s: %w", path, err)
		}
		stream = wc
		closeCodec = wc.Close
	}

	err = Write(stream, m)
	if closeCodec != nil {
		if cerr := closeCodec(); err == nil {
			err = cerr
		}
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// Write emits the model's header and payload to w. Elements with no rows are
// suppressed from both.
func Write(w io.Writer, m *Model) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(m.HeaderText()); err != nil {
		return err
	}

	for _, el := range m.Elements() {
		if el.RowCount() == 0 {
			continue
		}
		if err := el.WriteRows(bw, m.Format()); err != nil {
			return err
		}
	}

	return bw.Flush()
}
