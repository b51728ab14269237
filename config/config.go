package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds every tunable of the tool. All values have working defaults so
// the config file is optional.
type Config struct {
	Smoothing    float64
	Port         int
	Stem         bool
	StopWords    bool
	Tokenizer    string
	CorporaRoot  string
	SnapshotRoot string
}

// Load reads corpusdiff.yaml from the working directory if present and
// returns the effective configuration.
func Load() Config {
	viper.SetConfigName("corpusdiff") // name of config file (without extension)
	viper.AddConfigPath(".")          // look for config in the working directory

	viper.SetDefault("smoothing", 0.001)
	viper.SetDefault("port", 8080)
	viper.SetDefault("stem", false)
	viper.SetDefault("stopwords", false)
	viper.SetDefault("tokenizer", "runes")
	viper.SetDefault("corporaRoot", "./corpora")
	viper.SetDefault("snapshotRoot", "./snapshots")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("config file error, using defaults: %v", err)
		}
	}

	return Config{
		Smoothing:    viper.GetFloat64("smoothing"),
		Port:         viper.GetInt("port"),
		Stem:         viper.GetBool("stem"),
		StopWords:    viper.GetBool("stopwords"),
		Tokenizer:    viper.GetString("tokenizer"),
		CorporaRoot:  viper.GetString("corporaRoot"),
		SnapshotRoot: viper.GetString("snapshotRoot"),
	}
}
