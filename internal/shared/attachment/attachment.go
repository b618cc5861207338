// Package attachment holds file references carried by projects, modules,
// requirements and tasks. Only metadata is stored here; bytes live in object
// storage.
package attachment

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Origin records where a task attachment came from.
type Origin string

const (
	OriginTask        Origin = "task"
	OriginRequirement Origin = "requirement"
	OriginModule      Origin = "module"
	OriginProject     Origin = "project"
)

func (o Origin) Valid() bool {
	switch o {
	case OriginTask, OriginRequirement, OriginModule, OriginProject:
		return true
	}
	return false
}

type File struct {
	FileName string `json:"fileName"`
	FileURL  string `json:"fileUrl"`
	FileType string `json:"fileType,omitempty"`
	FileSize int64  `json:"fileSize,omitempty"`

	Origin         Origin `json:"origin,omitempty"`
	IsProjectLevel bool   `json:"isProjectLevel,omitempty"`
	IsModuleLevel  bool   `json:"isModuleLevel,omitempty"`
}

// Tagged returns a copy of f stamped with origin.
func (f File) Tagged(origin Origin) File {
	f.Origin = origin
	f.IsProjectLevel = origin == OriginProject
	f.IsModuleLevel = origin == OriginModule
	return f
}

// Files is a JSONB column of file references.
type Files []File

func (f Files) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (f *Files) Scan(value interface{}) error {
	if value == nil {
		*f = Files{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("attachment: cannot scan %T into Files", value)
	}
	if len(data) == 0 {
		*f = Files{}
		return nil
	}
	return json.Unmarshal(data, f)
}

// Clone copies the slice so later edits to the source never leak into the copy.
func (f Files) Clone() Files {
	out := make(Files, len(f))
	copy(out, f)
	return out
}

// Merge appends files from others that are not already present by URL.
func (f Files) Merge(others ...File) Files {
	seen := make(map[string]struct{}, len(f)+len(others))
	out := make(Files, 0, len(f)+len(others))
	for _, file := range f {
		key := strings.TrimSpace(file.FileURL)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, file)
	}
	for _, file := range others {
		key := strings.TrimSpace(file.FileURL)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, file)
	}
	return out
}

// FindByURL returns the files of f whose URL is in urls, in urls order.
// Unknown URLs are reported so callers can reject them.
func (f Files) FindByURL(urls []string) (Files, []string) {
	index := make(map[string]File, len(f))
	for _, file := range f {
		index[file.FileURL] = file
	}
	found := make(Files, 0, len(urls))
	var missing []string
	for _, u := range urls {
		file, ok := index[u]
		if !ok {
			missing = append(missing, u)
			continue
		}
		found = append(found, file)
	}
	return found, missing
}

var ErrInvalidReference = errors.New("attachment reference requires fileName and fileUrl")

// DecodeReferences parses the JSON-encoded "existing attachments" field sent
// alongside multipart uploads. Entries without an origin default to OriginTask.
func DecodeReferences(raw string) (Files, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Files{}, nil
	}
	var refs Files
	if err := json.Unmarshal([]byte(raw), &refs); err != nil {
		return nil, fmt.Errorf("decode attachment references: %w", err)
	}
	out := make(Files, 0, len(refs))
	for _, ref := range refs {
		if strings.TrimSpace(ref.FileName) == "" || strings.TrimSpace(ref.FileURL) == "" {
			return nil, ErrInvalidReference
		}
		origin := ref.Origin
		if origin == "" {
			switch {
			case ref.IsProjectLevel:
				origin = OriginProject
			case ref.IsModuleLevel:
				origin = OriginModule
			default:
				origin = OriginTask
			}
		}
		if !origin.Valid() {
			return nil, fmt.Errorf("decode attachment references: unknown origin %q", origin)
		}
		out = append(out, ref.Tagged(origin))
	}
	return out, nil
}
