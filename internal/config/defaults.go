package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		AI: AIConfig{
			Model: "gemini-2.5-flash",
		},
		Player: PlayerConfig{
			Binary: "mpv",
		},
		Server: ServerConfig{
			Listen: "127.0.0.1:7878",
		},
		Defaults: DefaultsConfig{
			Volume: 80,
		},
		TUI: TUIConfig{
			RefreshInterval: 1000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// AI
	if c.AI.Model == "" {
		c.AI.Model = d.AI.Model
	}

	// Player
	if c.Player.Binary == "" {
		c.Player.Binary = d.Player.Binary
	}

	// Server
	if c.Server.Listen == "" {
		c.Server.Listen = d.Server.Listen
	}

	// Defaults
	if c.Defaults.Volume == 0 {
		c.Defaults.Volume = d.Defaults.Volume
	}

	// TUI
	if c.TUI.RefreshInterval == 0 {
		c.TUI.RefreshInterval = d.TUI.RefreshInterval
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
