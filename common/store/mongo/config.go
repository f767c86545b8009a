package mongo

type ClientConfig struct {
	URI      string `kdl:"uri"`
	Username string `kdl:"username"`
	Password string `kdl:"password"`
}

type Config struct {
	ClientConfig
	Enabled    bool   `kdl:"enabled"`
	Database   string `kdl:"database"`
	Collection string `kdl:"collection"`
}
