package config

import "github.com/ykhdr/crypt-crack/common/logging"

type LogConfig struct {
	LogLevel  string `kdl:"log-level"`
	LogFormat string `kdl:"log-format"`
}

func (c *LogConfig) GetLogLevel() string {
	return c.LogLevel
}

func (c *LogConfig) GetLogFormat() string {
	return c.LogFormat
}

type hasLogConfig interface {
	GetLogLevel() string
	GetLogFormat() string
}

func setupLogger(cfg any) {
	logCfg, ok := cfg.(hasLogConfig)
	if !ok {
		logging.Setup(logging.InfoLevel, logging.FormatAuto)
		return
	}
	logging.Setup(
		logging.ParseLevel(logCfg.GetLogLevel()),
		logging.ParseFormat(logCfg.GetLogFormat()),
	)
}
