package config

import (
	"io/fs"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/crypt-crack/common/internal/kdl"
)

const defaultConfigPath = "./config/config.kdl"

type validatable interface {
	Validate() error
}

// InitializeConfig loads the KDL file named by args[0] over defaultCfg. With
// no arguments the default path is tried and, if it does not exist, the
// defaults are used as is. The logger is configured from the result.
func InitializeConfig[T any](args []string, defaultCfg T) (*T, error) {
	configPath := defaultConfigPath
	explicit := len(args) > 0
	if explicit {
		configPath = args[0]
	}
	config, err := kdl.Unmarshal[T](configPath, defaultCfg)
	fromFile := err == nil
	switch {
	case err == nil:
	case !explicit && errors.Is(err, fs.ErrNotExist):
		config = defaultCfg
	default:
		return nil, errors.Wrapf(err, "unmarshal kdl %s", configPath)
	}
	setupLogger(&config)
	if v, ok := any(&config).(validatable); ok {
		if err := v.Validate(); err != nil {
			return nil, errors.Wrap(err, "invalid config")
		}
	}
	log.Debug().Str("path", configPath).Bool("from-file", fromFile).Msg("config loaded")
	return &config, nil
}
