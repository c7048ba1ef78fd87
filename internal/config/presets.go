package config

// Presets are ready-made scenarios selectable by name from the CLI.
var Presets = map[string]*Config{
	"reference": DefaultConfig(),
	"reference-boot": func() *Config {
		c := DefaultConfig()
		c.NBoot = 500
		return c
	}(),
	"century": func() *Config {
		c := DefaultConfig()
		c.Metric = "value_at"
		c.Target = 100.0
		return c
	}(),
	"quick": func() *Config {
		c := DefaultConfig()
		c.N = 100
		return c
	}(),
	"logistic": func() *Config {
		c := DefaultConfig()
		c.Model = "logistic"
		c.Params[1].Mean = 0.05
		c.Params[1].StdDev = 0.005
		return c
	}(),
}
