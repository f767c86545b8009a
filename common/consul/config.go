package consul

import "github.com/hashicorp/consul/api"

type HealthConfig struct {
	Interval        string `kdl:"interval"`
	Timeout         string `kdl:"timeout"`
	Http            string `kdl:"http"`
	DeregisterAfter string `kdl:"deregister-after"`
}

func (c *HealthConfig) toApiConfig(baseUrl string) *api.AgentServiceCheck {
	return &api.AgentServiceCheck{
		HTTP:                           baseUrl + c.Http,
		Timeout:                        c.Timeout,
		Interval:                       c.Interval,
		DeregisterCriticalServiceAfter: c.DeregisterAfter,
	}
}

type Config struct {
	Enabled bool          `kdl:"enabled"`
	Address string        `kdl:"address"`
	Health  *HealthConfig `kdl:"health"`
}

func (c *Config) toApiConfig() *api.Config {
	cfg := api.DefaultConfig()
	cfg.Address = c.Address
	return cfg
}
