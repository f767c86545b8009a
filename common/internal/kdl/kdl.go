package kdl

import (
	"os"

	"github.com/sblinch/kdl-go"
)

// Unmarshal decodes the KDL document at kdlPath on top of defaultCfg, so
// keys absent from the file keep their default values.
func Unmarshal[T any](kdlPath string, defaultCfg T) (T, error) {
	var nilT T
	data, err := os.ReadFile(kdlPath)
	if err != nil {
		return nilT, err
	}
	return UnmarshalBytes(data, defaultCfg)
}

func UnmarshalBytes[T any](data []byte, defaultCfg T) (T, error) {
	var nilT T
	if err := kdl.Unmarshal(data, &defaultCfg); err != nil {
		return nilT, err
	}
	return defaultCfg, nil
}
