package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jimezsa/jamscrape/internal/listing"
)

const indent = "  "

// WriteListings writes listings to path as an indented JSON array.
func WriteListings(path string, listings []listing.JobListing) error {
	return writeFile(path, func(w io.Writer) error {
		return EncodeListings(w, listings)
	})
}

// WriteEmpty writes an empty JSON array to path.
func WriteEmpty(path string) error {
	return writeFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "[]")
		return err
	})
}

// EncodeListings writes listings as an indented JSON array without a
// trailing newline. Non-ASCII text and HTML characters are kept literal.
func EncodeListings(w io.Writer, listings []listing.JobListing) error {
	if listings == nil {
		listings = []listing.JobListing{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(listings); err != nil {
		return err
	}

	_, err := w.Write(bytes.TrimRight(buf.Bytes(), "\n"))
	return err
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("output path is required")
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return write(file)
}
