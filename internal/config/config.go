package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/LFroesch/pathfinder/internal/logger"
)

// Config holds all pathfinder configuration
type Config struct {
	StartPath  string `yaml:"start_path"` // Initial directory; empty means the working directory
	Editor     string `yaml:"editor"`     // Preferred editor command; empty means auto-detect
	ShowIcons  bool   `yaml:"show_icons"`
	LogEnabled bool   `yaml:"log_enabled"`

	// Listing filters
	HideDotfiles       bool     `yaml:"hide_dotfiles"`
	HideIgnoredFiles   bool     `yaml:"hide_ignored_files"`
	LabelIgnoredFiles  bool     `yaml:"label_ignored_files"`
	RemoveIgnoredFiles bool     `yaml:"remove_ignored_files"`
	IgnoreFileTypes    []string `yaml:"ignore_file_types"` // Candidate ignore filenames, highest priority first

	// Jump list bookkeeping
	Frecency    map[string]int    `yaml:"frecency"`
	LastVisited map[string]string `yaml:"last_visited"` // path -> RFC3339 timestamp

	path string // file this config was loaded from; empty means the default location
}

// Load reads config from ~/.config/pathfinder/config.yaml
func Load() *Config {
	configPath, err := GetConfigPath()
	if err != nil {
		logger.Error("Failed to get home directory: %v", err)
		// Fallback to current directory
		configPath = filepath.Join(".", "pathfinder.yaml")
	}
	return LoadFrom(configPath)
}

// LoadFrom reads config from an explicit file path, creating it with
// defaults on first run. Save writes back to the same file.
func LoadFrom(configPath string) *Config {
	configDir := filepath.Dir(configPath)

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		logger.Error("Failed to create config directory %s: %v", configDir, err)
	}

	defaultConfig := &Config{
		StartPath:          "",
		Editor:             "",
		ShowIcons:          true,
		LogEnabled:         true,
		HideDotfiles:       true,
		HideIgnoredFiles:   false,
		LabelIgnoredFiles:  true,
		RemoveIgnoredFiles: false,
		IgnoreFileTypes:    defaultIgnoreFileTypes(),
		Frecency:           make(map[string]int),
		LastVisited:        make(map[string]string),
		path:               configPath,
	}

	// Try to load existing config
	data, err := os.ReadFile(configPath)
	if err != nil {
		// Save default config and return it
		if err := Save(defaultConfig); err != nil {
			logger.Warn("Failed to save default config: %v", err)
		}
		return defaultConfig
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		logger.Warn("Failed to parse config file %s: %v, using defaults", configPath, err)
		return defaultConfig
	}
	config.path = configPath

	// Initialize maps if they're nil
	if config.Frecency == nil {
		config.Frecency = make(map[string]int)
	}
	if config.LastVisited == nil {
		config.LastVisited = make(map[string]string)
	}
	// Initialize ignore_file_types with defaults if empty or nil
	if len(config.IgnoreFileTypes) == 0 {
		config.IgnoreFileTypes = defaultIgnoreFileTypes()
		// Save to file so users can see and edit the defaults
		if err := Save(config); err != nil {
			logger.Warn("Failed to save config after adding ignore_file_types: %v", err)
		}
	}

	// Hiding and removing at the same time is redundant; removal wins
	if config.RemoveIgnoredFiles && config.HideIgnoredFiles {
		logger.Warn("remove_ignored_files already implies hide_ignored_files")
	}

	if config.StartPath != "" {
		if fi, err := os.Stat(config.StartPath); err != nil || !fi.IsDir() {
			logger.Warn("start_path %q is not a directory, ignoring", config.StartPath)
			config.StartPath = ""
		}
	}

	return config
}

// Save writes config back to the file it was loaded from, defaulting
// to ~/.config/pathfinder/config.yaml
func Save(config *Config) error {
	configPath := config.path
	if configPath == "" {
		p, err := GetConfigPath()
		if err != nil {
			logger.Error("Failed to get home directory: %v", err)
			return fmt.Errorf("cannot get home directory: %w", err)
		}
		configPath = p
	}
	configDir := filepath.Dir(configPath)

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		logger.Error("Failed to create config directory %s: %v", configDir, err)
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		logger.Error("Failed to marshal config: %v", err)
		return fmt.Errorf("cannot marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		logger.Error("Failed to write config file %s: %v", configPath, err)
		return fmt.Errorf("cannot write config file: %w", err)
	}

	return nil
}

// RecordVisit bumps a directory's frecency count and visit timestamp for
// the jump list.
func (c *Config) RecordVisit(path string) {
	if c.Frecency == nil {
		c.Frecency = make(map[string]int)
	}
	if c.LastVisited == nil {
		c.LastVisited = make(map[string]string)
	}
	c.Frecency[path]++
	c.LastVisited[path] = time.Now().Format(time.RFC3339)
}

// RecentDirs returns visited directories ordered by frecency, most
// frequent first, ties broken by most recent visit.
func (c *Config) RecentDirs() []string {
	dirs := make([]string, 0, len(c.Frecency))
	for path := range c.Frecency {
		dirs = append(dirs, path)
	}
	sort.Slice(dirs, func(i, j int) bool {
		if c.Frecency[dirs[i]] != c.Frecency[dirs[j]] {
			return c.Frecency[dirs[i]] > c.Frecency[dirs[j]]
		}
		return c.LastVisited[dirs[i]] > c.LastVisited[dirs[j]]
	})
	return dirs
}

// defaultIgnoreFileTypes is the ignore-file search order, highest
// priority first
func defaultIgnoreFileTypes() []string {
	return []string{".gitignore", ".ignore"}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "pathfinder", "config.yaml"), nil
}
