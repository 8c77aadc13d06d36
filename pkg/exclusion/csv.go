package exclusion

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	ColumnDestination = "destination"
	ColumnPort        = "port"
	ColumnProtocol    = "protocol"

	utf8BOM = "\ufeff"
)

var requiredColumns = []string{ColumnDestination, ColumnPort, ColumnProtocol}

var ErrEmptyFile = errors.New("exclusion file has no header row")

type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("exclusion file is missing required column %q", e.Column)
}

// ParseFile reads exclusion rules from the CSV file at path.
func ParseFile(path string) ([]Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open exclusion file: %w", err)
	}
	defer func() { _ = f.Close() }()

	rules, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// Parse reads a header row naming the destination, port and protocol columns
// followed by one rule per row. Extra columns are ignored and row order is
// kept.
func Parse(r io.Reader) ([]Rule, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, &MissingColumnError{Column: name}
		}
	}

	var rules []Rule
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read rule: %w", err)
		}

		line, _ := reader.FieldPos(0)
		field := func(name string) (string, error) {
			i := columns[name]
			if i >= len(record) {
				return "", fmt.Errorf("line %d: missing %s field", line, name)
			}
			return normalize(record[i]), nil
		}

		var rule Rule
		if rule.Destination, err = field(ColumnDestination); err != nil {
			return nil, err
		}
		if rule.Port, err = field(ColumnPort); err != nil {
			return nil, err
		}
		if rule.Protocol, err = field(ColumnProtocol); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
