package filesystem

import (
	"github.com/sfpd/picklist-dependency/internal/pkg/encoding/json"
	"github.com/sfpd/picklist-dependency/internal/pkg/utils/errors"
)

// File is common abstraction for a file.
type File interface {
	Description() string
	Path() string
	ToRawFile() (*RawFile, error)
}

type FileDef struct {
	desc string
	path string
}

type RawFile struct {
	*FileDef
	Content string
}

type JSONFile struct {
	*FileDef
	Content any
}

func NewFileDef(path string) *FileDef {
	return &FileDef{path: path}
}

func (f *FileDef) Path() string {
	return f.path
}

func (f *FileDef) SetPath(v string) *FileDef {
	f.path = v
	return f
}

func (f *FileDef) Description() string {
	return f.desc
}

func (f *FileDef) SetDescription(v string) *FileDef {
	f.desc = v
	return f
}

func NewRawFile(path, content string) *RawFile {
	return &RawFile{FileDef: NewFileDef(path), Content: content}
}

func (f *RawFile) SetDescription(desc string) *RawFile {
	f.desc = desc
	return f
}

func (f *RawFile) ToRawFile() (*RawFile, error) {
	return f, nil
}

// ToJSONFileTo decodes the file content to the target.
func (f *RawFile) ToJSONFileTo(target any) (*JSONFile, error) {
	if err := json.DecodeString(f.Content, target); err != nil {
		return nil, errors.PrefixErrorf(err, `file "%s" is invalid`, f.Path())
	}
	return &JSONFile{FileDef: f.FileDef, Content: target}, nil
}

func NewJSONFile(path string, content any) *JSONFile {
	return &JSONFile{FileDef: NewFileDef(path), Content: content}
}

func (f *JSONFile) ToRawFile() (*RawFile, error) {
	content, err := json.EncodeString(f.Content, true)
	if err != nil {
		return nil, errors.PrefixErrorf(err, `cannot encode file "%s"`, f.Path())
	}
	return &RawFile{FileDef: f.FileDef, Content: content}, nil
}
