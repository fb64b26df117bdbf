package svcspec

import (
	"fmt"
	"os"
	"strings"

	"github.com/core-tools/hsu-svcctl/pkg/errors"

	"github.com/BurntSushi/toml"
)

// DecodeLayerFile loads a sparse spec layer from a TOML file.
//
// Only keys present in the file populate the returned layer; everything else
// stays nil so the resolver can tell "unset" from "set to the zero value".
func DecodeLayerFile(path string) (*Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIOError("failed to read spec file", err).WithContext("path", path)
	}
	return decodeLayer(string(data), path)
}

// DecodeLayer parses TOML text into a sparse spec layer.
// Unrecognized keys are rejected rather than silently dropped.
func DecodeLayer(data string) (*Layer, error) {
	return decodeLayer(data, "")
}

// LoadDefaultLayer loads the process-wide default spec layer. An empty path
// selects the well-known default spec file. A missing file is not an error:
// the default layer is optional local configuration, and nil is returned.
func LoadDefaultLayer(path string) (*Layer, error) {
	if path == "" {
		path = DefaultSpecConfigFile()
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewIOError("failed to access default spec file", err).WithContext("path", path)
	}

	return DecodeLayerFile(path)
}

func decodeLayer(data string, path string) (*Layer, error) {
	var layer Layer
	md, err := toml.Decode(data, &layer)
	if err != nil {
		decodeErr := errors.NewDecodeError("failed to parse TOML spec", err)
		if path != "" {
			decodeErr = decodeErr.WithContext("path", path)
		}
		return nil, decodeErr
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		unknownErr := errors.NewUnknownFieldError(
			fmt.Sprintf("unknown key(s) in spec: %s", strings.Join(keys, ", ")),
			nil,
		)
		if path != "" {
			unknownErr = unknownErr.WithContext("path", path)
		}
		return nil, unknownErr
	}

	return &layer, nil
}
