package config

import (
	"os"

	"github.com/go-yaml/yaml"
)

type Config struct {
	Server  Server  `yaml:"server"`
	Sparql  Sparql  `yaml:"sparql"`
	Locks   Locks   `yaml:"locks"`
	Session Session `yaml:"session"`
}

type Server struct {
	Listen           string `yaml:"listen"`
	EnableTrace      bool   `yaml:"enableTrace"`
	TraceEndpoint    string `yaml:"traceEndpoint"`
	PostWriteDelayMs int    `yaml:"postWriteDelayMs"`
}

type Sparql struct {
	QueryEndpoint      string `yaml:"queryEndpoint"`
	UpdateEndpoint     string `yaml:"updateEndpoint"`
	PieceBatchSize     int    `yaml:"pieceBatchSize"`
	SinglePersistQuery bool   `yaml:"singlePersistQuery"`
}

type Locks struct {
	Backend       string `yaml:"backend"` // memory, redis
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDB"`
	TTLSeconds    int    `yaml:"ttlSeconds"`
}

type Session struct {
	Backend       string `yaml:"backend"` // memory, memcached
	MemcachedAddr string `yaml:"memcachedAddr"`
	TTLSeconds    int    `yaml:"ttlSeconds"`
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	if config.Server.Listen == "" {
		config.Server.Listen = ":8000"
	}
	if config.Sparql.QueryEndpoint == "" {
		config.Sparql.QueryEndpoint = "http://database:8890/sparql"
	}
	if config.Sparql.PieceBatchSize <= 0 {
		config.Sparql.PieceBatchSize = 25
	}
	if config.Locks.Backend == "" {
		config.Locks.Backend = "memory"
	}
	if config.Locks.TTLSeconds <= 0 {
		config.Locks.TTLSeconds = 300
	}
	if config.Session.Backend == "" {
		config.Session.Backend = "memory"
	}
	if config.Session.TTLSeconds <= 0 {
		config.Session.TTLSeconds = 60
	}

	return config, nil
}
