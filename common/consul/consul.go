package consul

import (
	"fmt"

	"github.com/hashicorp/consul/api"
	"github.com/pkg/errors"
)

type Registration struct {
	ID      string
	Name    string
	Address string
	Port    int
}

func (r *Registration) Url() string {
	return fmt.Sprintf("http://%s:%d", r.Address, r.Port)
}

type Client interface {
	RegisterService(serviceName, address string, port int) (*Registration, error)
	DeregisterService(reg *Registration) error
}

type client struct {
	cfg    *Config
	client *api.Client
}

func NewClient(cfg *Config) (Client, error) {
	cl, err := api.NewClient(cfg.toApiConfig())
	if err != nil {
		return nil, errors.Wrap(err, "create consul client")
	}
	return &client{client: cl, cfg: cfg}, nil
}

func (c *client) RegisterService(serviceName, address string, port int) (*Registration, error) {
	reg := &Registration{
		ID:      fmt.Sprintf("%s-%s:%d", serviceName, address, port),
		Name:    serviceName,
		Address: address,
		Port:    port,
	}
	registrationReq := &api.AgentServiceRegistration{
		ID:      reg.ID,
		Name:    reg.Name,
		Address: reg.Address,
		Port:    reg.Port,
	}
	if c.cfg.Health != nil {
		registrationReq.Check = c.cfg.Health.toApiConfig(reg.Url())
	}
	if err := c.client.Agent().ServiceRegister(registrationReq); err != nil {
		return nil, errors.Wrap(err, "register service")
	}
	return reg, nil
}

func (c *client) DeregisterService(reg *Registration) error {
	if err := c.client.Agent().ServiceDeregister(reg.ID); err != nil {
		return errors.Wrap(err, "deregister service")
	}
	return nil
}
