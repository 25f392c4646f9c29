package env

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/sfpd/picklist-dependency/internal/pkg/filesystem"
	"github.com/sfpd/picklist-dependency/internal/pkg/log"
	"github.com/sfpd/picklist-dependency/internal/pkg/utils/errors"
)

// LoadDotEnv loads envs from ".env" if exists. Existing envs take precedence.
func LoadDotEnv(ctx context.Context, logger log.Logger, osEnvs *Map, fs filesystem.Fs, dirs []string) *Map {
	envs := osEnvs.Clone()

	for _, dir := range dirs {
		for _, file := range Files() {
			// Check if exists
			path := filesystem.Join(dir, file)
			info, err := fs.Stat(ctx, path)
			switch {
			case err == nil && info.IsDir():
				// Expected file found dir
				continue
			case err != nil && os.IsNotExist(err):
				// File doesn't exist
				continue
			case err != nil:
				logger.Warnf(ctx, `Cannot check if path "%s" exists: %s`, path, err)
				continue
			}

			fileEnvs, err := LoadEnvFile(ctx, fs, path)
			if err != nil {
				logger.Warn(ctx, err.Error())
				continue
			}
			logger.Infof(ctx, "Loaded env file \"%s\".", path)

			// Merge ENVs, existing keys take precedence.
			envs.Merge(fileEnvs, false)
		}
	}

	return envs
}

func LoadEnvFile(ctx context.Context, fs filesystem.Fs, path string) (*Map, error) {
	file, err := fs.ReadFile(ctx, filesystem.NewFileDef(path).SetDescription("env file"))
	if err != nil {
		return nil, errors.Errorf(`cannot read env file "%s": %w`, path, err)
	}

	envs, err := LoadEnvString(file.Content)
	if err != nil {
		return nil, errors.Errorf(`cannot parse env file "%s": %w`, path, err)
	}

	return envs, nil
}

func LoadEnvString(str string) (*Map, error) {
	envsMap, err := godotenv.Unmarshal(str)
	if err != nil {
		return nil, err
	}

	// A line without "=" is parsed as a value with an empty key
	if value, found := envsMap[""]; found {
		return nil, errors.Errorf(`expected "KEY=value", found "%s"`, value)
	}

	return FromMap(envsMap), nil
}
