package parser

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcncl/nestrep/internal/errors"
	"github.com/mcncl/nestrep/internal/models"
)

// ParseJSON reads exactly one JSON document from reader. Numbers are kept as
// json.Number so their text survives conversion to scalars unchanged.
func ParseJSON(reader io.Reader) (models.JSONValue, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber()

	var root models.JSONValue
	if err := decoder.Decode(&root); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewInputError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		var syntaxError *json.SyntaxError
		if stderrors.As(err, &syntaxError) {
			return nil, errors.NewInputError(fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset), err)
		}
		return nil, errors.NewInputError("failed to decode JSON", err)
	}

	if decoder.More() {
		var trailing interface{}
		if err := decoder.Decode(&trailing); err == nil {
			return nil, errors.NewInputError("multiple JSON values found at the root", nil)
		} else if !stderrors.Is(err, io.EOF) {
			return nil, errors.NewInputError("invalid trailing data after first JSON value", err)
		}
	}

	return normalizeJSONValue(root), nil
}

// ParseJSONString parses a JSON document held in a string
func ParseJSONString(s string) (models.JSONValue, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return ParseJSON(strings.NewReader(s))
}

// normalizeJSONValue converts raw JSON types into our model types
func normalizeJSONValue(val models.JSONValue) models.JSONValue {
	switch v := val.(type) {
	case map[string]interface{}:
		obj := make(models.JSONObject, len(v))
		for key, value := range v {
			obj[key] = normalizeJSONValue(value)
		}
		return obj
	case []interface{}:
		arr := make(models.JSONArray, len(v))
		for i, value := range v {
			arr[i] = normalizeJSONValue(value)
		}
		return arr
	default:
		return v
	}
}

// ReadString returns the trimmed contents of r, failing on empty input.
func ReadString(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.NewInputError("failed to read input", err)
	}
	s := strings.TrimSpace(string(data))
	if s == "" {
		return "", errors.NewInputError("input is empty", errors.ErrEmptyInput)
	}
	return s, nil
}

// ReadFile returns the trimmed contents of the file at filePath.
func ReadFile(filePath string) (string, error) {
	if strings.TrimSpace(filePath) == "" {
		return "", errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewInputError(fmt.Sprintf("file '%s' not found", filePath), errors.ErrFileNotFound)
		}
		return "", errors.NewInputError(fmt.Sprintf("failed to open file '%s'", filePath), err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return "", errors.NewInputError(fmt.Sprintf("failed to get file stats for '%s'", filePath), err)
	}
	if stat.Size() == 0 {
		return "", errors.NewInputError(fmt.Sprintf("input file '%s' is empty", filePath), errors.ErrFileEmpty)
	}

	return ReadString(file)
}
