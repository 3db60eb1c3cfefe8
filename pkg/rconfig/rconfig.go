// Package rconfig loads the Router's tunables (container path, cache
// capacity, zoom, frame bounds, per-profile reference speeds) via viper,
// following pkg/util/config.go and pkg/http/server.go's
// viper.SetDefault/viper.Get* idiom in the teacher repo.
package rconfig

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the Router's runtime tunables.
type Config struct {
	ContainerPath string
	CacheCapacity int
	Zoom          int
	FrameMin      int
	FrameMax      int
	CarVRefMps    float64
	FootVRefMps   float64
}

// Load reads configName from configPath (if present) layered under
// defaults and the NAVCORE_-prefixed environment, following the teacher's
// viper.SetConfigName/AddConfigPath/ReadInConfig sequence. A missing config
// file is not an error: defaults and environment variables still apply.
func Load(configPath, configName string) (Config, error) {
	v := viper.New()
	v.SetDefault("container_path", "./data/map.tiles")
	v.SetDefault("cache_capacity", 64)
	v.SetDefault("zoom", 14)
	v.SetDefault("frame_min", 1)
	v.SetDefault("frame_max", 8)
	v.SetDefault("car_vref_mps", 13.9)
	v.SetDefault("foot_vref_mps", 1.4)

	v.SetEnvPrefix("NAVCORE")
	v.AutomaticEnv()

	if configName != "" {
		v.SetConfigName(configName)
		if configPath != "" {
			v.AddConfigPath(configPath)
		}
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("fatal error config file: %w", err)
			}
		}
	}

	return Config{
		ContainerPath: v.GetString("container_path"),
		CacheCapacity: v.GetInt("cache_capacity"),
		Zoom:          v.GetInt("zoom"),
		FrameMin:      v.GetInt("frame_min"),
		FrameMax:      v.GetInt("frame_max"),
		CarVRefMps:    v.GetFloat64("car_vref_mps"),
		FootVRefMps:   v.GetFloat64("foot_vref_mps"),
	}, nil
}
