// Package config loads and watches the wavescope.yaml configuration
// file. A process holds one active configuration, read through Get and
// replaced wholesale by Reload or the file watcher.
package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Path overrides the config file location, normally from the --config
// flag. When empty the loader falls back to the WAVESCOPE_CONFIG
// environment variable and then to wavescope.yaml in the working
// directory.
var Path = ""

const envConfigPath = "WAVESCOPE_CONFIG"

var instance *Config
var singletonLock = &sync.Once{}

func configPath() string {
	if Path != "" {
		return Path
	}
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}

	return "wavescope.yaml"
}

func reloadConfig() (*Config, error) {
	p := configPath()

	// Write a commented default config if the one given doesn't exist.
	if _, err := os.Stat(p); os.IsNotExist(err) {
		fmt.Println("Generating new configuration:", p)
		if err := os.WriteFile(p, []byte(defaultConfigYAML), 0o644); err != nil {
			return nil, fmt.Errorf("write default config: %w", err)
		}
	} else if err != nil {
		return nil, err
	}

	c := NewDefaultConfig()

	buf, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(buf, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", p, err)
	}

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}

	return c, nil
}

// Get returns the active configuration, loading it on first use. Load
// failures at this point are fatal: commands that want to surface the
// error themselves call Reload before touching Get.
func Get() *Config {
	if instance == nil {
		singletonLock.Do(func() {
			c, err := reloadConfig()
			if err != nil {
				logrus.Fatal(err)
			}
			instance = c
		})
	}

	return instance
}

// Reload reads the configuration file again and makes it the active
// instance. On error the previous instance stays active.
func Reload() (*Config, error) {
	c, err := reloadConfig()
	if err != nil {
		return nil, err
	}
	instance = c

	return c, nil
}
