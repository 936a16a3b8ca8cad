package family

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	stylekiterrors "github.com/alexisbeaulieu97/stylekit/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Load reads a family document from disk, validates it, and returns the resulting model.
func Load(path string) (*Family, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, stylekiterrors.NewParseError(path, 0, err)
	}
	return Parse(path, data)
}

// Parse decodes and validates a family document. Unknown keys are rejected.
func Parse(path string, data []byte) (*Family, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var fam Family
	if err := dec.Decode(&fam); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, stylekiterrors.NewParseError(path, 0, fmt.Errorf("document is empty"))
		}
		return nil, stylekiterrors.NewParseError(path, extractLine(err), err)
	}

	if err := Validate(&fam); err != nil {
		return nil, stylekiterrors.WithPath(err, path)
	}

	return &fam, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
