package util

import (
	"errors"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const confFileName = "config.yml"

// AppConfig is the on-disk configuration. The nested Conf block keeps
// the yaml file grouped under a single top-level key.
type AppConfig struct {
	Conf MainConf `yaml:"conf"`
}

type MainConf struct {
	Host     string `yaml:"host"`
	SshPort  int    `yaml:"sshport"`
	HttpPort int    `yaml:"httpport"`
	DbFile   string `yaml:"dbfile"`
	WithHttp bool   `yaml:"withhttp"`

	// Feed policy switches.
	AllowSelfFollow     bool `yaml:"allowselffollow"`
	AllowSelfRetweet    bool `yaml:"allowselfretweet"`
	TimelineIncludeSelf bool `yaml:"timelineincludeself"`

	// Retweet spam classification: flag a retweet when the retweeter
	// already has SpamMaxPerAuthor retweets of the same author within
	// the trailing SpamWindowDays.
	SpamWindowDays   int `yaml:"spamwindowdays"`
	SpamMaxPerAuthor int `yaml:"spammaxperauthor"`
}

func defaultConf() AppConfig {
	return AppConfig{Conf: MainConf{
		Host:             "localhost",
		SshPort:          2222,
		HttpPort:         8080,
		DbFile:           "dodo.db",
		WithHttp:         true,
		AllowSelfRetweet: true,
		SpamWindowDays:   7,
		SpamMaxPerAuthor: 5,
	}}
}

// ReadConf loads the yaml config next to the other app files, writing
// a default one on first start.
func ReadConf() (*AppConfig, error) {
	path, err := ResolveFilePath(confFileName)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		conf := defaultConf()
		out, err := yaml.Marshal(&conf)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, out, 0600); err != nil {
			return nil, err
		}
		log.Printf("wrote default config to %s", path)
		return &conf, nil
	}

	in, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	conf := defaultConf()
	if err := yaml.Unmarshal(in, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

// ResolveFilePath places app files under the user config dir,
// falling back to the working directory.
func ResolveFilePath(name string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return name, nil
	}
	dir := filepath.Join(base, "dodo")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// SetupLogging directs the stdlib logger to a file when one is
// configured via env, otherwise leaves it on stderr.
func SetupLogging() {
	logFile := os.Getenv("DODO_LOGFILE")
	if logFile == "" {
		return
	}
	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		log.Printf("could not open logfile %s: %v", logFile, err)
		return
	}
	log.SetOutput(f)
}
