package util

import (
	"os"
	"strings"
)

// FileMode is the default FileMode used when creating files.
const FileMode = 0664

// CacheFileName is the name of the file persisting option values.
const CacheFileName = "SQCache.yaml"

// FileExists checks whether some file exists.
func FileExists(file string) bool {
	stat, err := os.Stat(file)
	return err == nil && !stat.IsDir()
}

// Environment returns the process environment as a map.
func Environment() map[string]string {
	environment := map[string]string{}
	for _, v := range os.Environ() {
		key, value, ok := strings.Cut(v, "=")
		if ok {
			environment[key] = value
		}
	}
	return environment
}
