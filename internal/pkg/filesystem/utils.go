package filesystem

import (
	"context"
)

// ReadJSONFileTo reads and decodes the JSON file to the target.
func ReadJSONFileTo(ctx context.Context, fs Fs, def *FileDef, target any) (*JSONFile, error) {
	file, err := fs.ReadFile(ctx, def)
	if err != nil {
		return nil, err
	}
	return file.ToJSONFileTo(target)
}
