package envparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/getblogd/blogd-services/pkg/ajan/lib"
)

var ErrParsingError = errors.New("parsing error")

func Parse(m *map[string]any, keyCaseInsensitive bool, r io.Reader) error { //nolint:varnamelen
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		line = strings.TrimPrefix(line, "export ")

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		// strip surrounding quotes
		if len(value) >= 2 { //nolint:mnd
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		if keyCaseInsensitive {
			lib.CaseInsensitiveSet(m, key, value)
		} else {
			(*m)[key] = value
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrParsingError, err)
	}

	return nil
}

func tryParseFile(m *map[string]any, keyCaseInsensitive bool, filename string) (err error) { //nolint:varnamelen
	file, fileErr := os.Open(filepath.Clean(filename))
	if fileErr != nil {
		if os.IsNotExist(fileErr) {
			return nil
		}

		return fmt.Errorf("%w: %w", ErrParsingError, fileErr)
	}

	defer func() {
		err = file.Close()
	}()

	return Parse(m, keyCaseInsensitive, file)
}

func TryParseFiles(m *map[string]any, keyCaseInsensitive bool, filenames ...string) error {
	for _, filename := range filenames {
		err := tryParseFile(m, keyCaseInsensitive, filename)
		if err != nil {
			return err
		}
	}

	return nil
}
