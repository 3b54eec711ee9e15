package todo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const seedSchemaURL = "https://github.com/nibzard/tarefas/seed.schema.json"

//go:embed seed.schema.json
var seedSchemaJSON []byte

var (
	seedSchemaOnce sync.Once
	seedSchema     *jsonschema.Schema
	seedSchemaErr  error
)

// SeedTask is one entry in a seed file.
type SeedTask struct {
	Title string `json:"title"`
	Done  bool   `json:"done,omitempty"`
}

// SeedFile represents the seed file structure.
type SeedFile struct {
	Tasks []SeedTask `json:"tasks"`
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // Path to the error location, e.g. tasks[2].title
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// SeedError collects every problem found in a seed file.
type SeedError struct {
	Path   string
	Errors []error
}

func (e *SeedError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid seed file %s: %s", e.Path, strings.Join(msgs, "; "))
}

// Unwrap returns the collected errors.
func (e *SeedError) Unwrap() []error {
	return e.Errors
}

// LoadSeed reads, parses and validates a seed file from path.
func LoadSeed(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	f, err := ParseSeed(data)
	if err != nil {
		var se *SeedError
		if errors.As(err, &se) {
			se.Path = path
		}
		return nil, err
	}
	return f, nil
}

// ParseSeed parses and validates seed file contents.
func ParseSeed(data []byte) (*SeedFile, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	if errs := validateSeed(doc); len(errs) > 0 {
		return nil, &SeedError{Errors: errs}
	}

	var f SeedFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	if errs := f.checkTitles(); len(errs) > 0 {
		return nil, &SeedError{Errors: errs}
	}
	return &f, nil
}

// checkTitles reports titles that would collide once trimmed and folded.
func (f *SeedFile) checkTitles() []error {
	var errs []error
	for i, t := range f.Tasks {
		title := NormalizeTitle(t.Title)
		for j := 0; j < i; j++ {
			if strings.EqualFold(NormalizeTitle(f.Tasks[j].Title), title) {
				errs = append(errs, &ValidationError{
					Path: fmt.Sprintf("tasks[%d].title", i),
					Err:  fmt.Errorf("duplicate of tasks[%d]: %w", j, ErrDuplicateTitle),
				})
				break
			}
		}
	}
	return errs
}

// Apply adds the seed tasks to s. The first task in the file ends up at
// the front of the list.
func (f *SeedFile) Apply(s *Store) error {
	for i := len(f.Tasks) - 1; i >= 0; i-- {
		entry := f.Tasks[i]
		task, err := s.Add(entry.Title)
		if err != nil {
			return &ValidationError{Path: fmt.Sprintf("tasks[%d].title", i), Err: err}
		}
		if entry.Done {
			s.Toggle(task.ID)
		}
	}
	return nil
}

func compiledSeedSchema() (*jsonschema.Schema, error) {
	seedSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(seedSchemaURL, bytes.NewReader(seedSchemaJSON)); err != nil {
			seedSchemaErr = fmt.Errorf("load seed schema: %w", err)
			return
		}
		seedSchema, seedSchemaErr = compiler.Compile(seedSchemaURL)
	})
	return seedSchema, seedSchemaErr
}

func validateSeed(doc interface{}) []error {
	schema, err := compiledSeedSchema()
	if err != nil {
		return []error{err}
	}
	err = schema.Validate(doc)
	if err == nil {
		return nil
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []error{err}
	}
	var errs []error
	collectSchemaErrors(&errs, ve)
	return errs
}

func collectSchemaErrors(errs *[]error, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		*errs = append(*errs, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(errs, cause)
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
