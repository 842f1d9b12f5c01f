// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package request loads and validates render requests from the file channel
// or a stream.
package request

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/mold/v4"
	"github.com/go-playground/mold/v4/modifiers"
	"github.com/go-playground/validator/v10"

	"github.com/pdiddy/versedeck/internal/apperr"
	"github.com/pdiddy/versedeck/pkg/types"
)

// SourceStdin names the stream channel in errors.
const SourceStdin = "stdin"

// channelDir is the directory under TEMP the calling application writes to.
const channelDir = "HMZPresentation"

// InputPath returns the request file of the file channel. An empty Dir
// resolves to $TEMP/HMZPresentation, or the OS temp directory when TEMP is
// unset.
func InputPath(cfg types.InputConfig) string {
	dir := cfg.Dir
	if dir == "" {
		base := os.Getenv("TEMP")
		if base == "" {
			base = os.TempDir()
		}
		dir = filepath.Join(base, channelDir)
	}
	file := cfg.File
	if file == "" {
		file = "show_pptx.json"
	}
	return filepath.Join(dir, file)
}

// Binder decodes a request, trims its strings with mold and validates it.
type Binder struct {
	conform  *mold.Transformer
	validate *validator.Validate
}

// NewBinder creates a Binder whose validation messages use JSON field names.
func NewBinder() *Binder {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Binder{conform: modifiers.New(), validate: validate}
}

// Decode parses data as a RenderRequest. source names the channel in errors.
func (b *Binder) Decode(ctx context.Context, data []byte, source string) (*types.RenderRequest, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &apperr.InputError{Source: source, Message: "no input provided"}
	}

	var req types.RenderRequest
	if err := json.Unmarshal(data, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &apperr.InputError{Source: source, Message: formatUnmarshalTypeError(typeErr)}
		}
		return nil, &apperr.InputError{Source: source, Message: "malformed JSON", Err: err}
	}

	if err := b.conform.Struct(ctx, &req); err != nil {
		return nil, &apperr.InputError{Source: source, Message: "normalizing request", Err: err}
	}

	if err := b.validate.Struct(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, &apperr.InputError{Source: source, Message: formatValidationError(verrs[0])}
		}
		return nil, &apperr.InputError{Source: source, Message: "validating request", Err: err}
	}
	return &req, nil
}

// LoadFile reads the request at path and deletes the file on every exit
// path, whether or not the request was valid.
func (b *Binder) LoadFile(ctx context.Context, path string) (req *types.RenderRequest, err error) {
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) && err == nil {
			err = fmt.Errorf("removing request file: %w", rmErr)
			req = nil
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &apperr.InputError{Source: path, Message: "request file not found", Err: err}
		}
		return nil, &apperr.InputError{Source: path, Message: "reading request file", Err: err}
	}
	return b.Decode(ctx, data, path)
}

// LoadReader reads a whole request from r.
func (b *Binder) LoadReader(ctx context.Context, r io.Reader) (*types.RenderRequest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &apperr.InputError{Source: SourceStdin, Message: "reading input", Err: err}
	}
	return b.Decode(ctx, data, SourceStdin)
}

func formatUnmarshalTypeError(err *json.UnmarshalTypeError) string {
	return fmt.Sprintf("%q should be of type %s", strings.Trim(err.Field, "."), err.Type)
}

func formatValidationError(err validator.FieldError) string {
	field := err.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	default:
		return fmt.Sprintf("%q failed %s validation", field, err.Tag())
	}
}
