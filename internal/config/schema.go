package config

// Config is the root configuration structure.
type Config struct {
	YouTube   YouTubeConfig   `toml:"youtube"`
	AI        AIConfig        `toml:"ai"`
	Community CommunityConfig `toml:"community"`
	Storage   StorageConfig   `toml:"storage"`
	Player    PlayerConfig    `toml:"player"`
	Server    ServerConfig    `toml:"server"`
	Defaults  DefaultsConfig  `toml:"defaults"`
	TUI       TUIConfig       `toml:"tui"`
	Log       LogConfig       `toml:"log"`
}

// YouTubeConfig holds catalog search API settings.
type YouTubeConfig struct {
	APIKey string `toml:"api_key"`
}

// AIConfig holds generative AI settings for the DJ features.
type AIConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// CommunityConfig holds shared public catalog settings.
type CommunityConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
}

// StorageConfig holds local persistence settings.
type StorageConfig struct {
	Dir string `toml:"dir"`
}

// PlayerConfig holds playback backend settings.
type PlayerConfig struct {
	Binary string `toml:"binary"`
}

// ServerConfig holds the local control server settings.
type ServerConfig struct {
	Listen string `toml:"listen"`
}

// DefaultsConfig holds default playback settings.
type DefaultsConfig struct {
	Volume int `toml:"volume"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	RefreshInterval int `toml:"refresh_interval"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}
