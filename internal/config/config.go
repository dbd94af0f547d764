package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Host       string     `koanf:"host"`
	Port       int        `koanf:"port"`
	Frontend   Frontend   `koanf:"frontend"`
	Database   Database   `koanf:"db"`
	Upload     Upload     `koanf:"upload"`
	Comparison Comparison `koanf:"comparison"`
}

type Frontend struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Upload struct {
	// MaxBytes limits the size of a single department data upload.
	MaxBytes int64 `koanf:"maxbytes"`
}

type Comparison struct {
	// HighPerformer is the inclusive "after" percentage from which a department is reported as a high performer.
	HighPerformer float64 `koanf:"highperformer"`
	// TopN is the number of most improved / most declined departments listed in a summary.
	TopN int `koanf:"topn"`
}

func Defaults() Application {
	return Application{
		Host: "http://localhost:3000",
		Port: 8181,
		Frontend: Frontend{
			Enabled: false,
			Dir:     "frontend",
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "perfdash",
			Pass:   "",
			Name:   "perfdash",
			Schema: "perfdash",
		},
		Upload: Upload{
			MaxBytes: 10 << 20,
		},
		Comparison: Comparison{
			HighPerformer: 90,
			TopN:          3,
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "PERFDASH_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "PERFDASH_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
