package repo

import (
	"os"

	"gopkg.in/ini.v1"

	"github.com/brickster241/jitvcs/internal/jitpath"
	"github.com/brickster241/jitvcs/internal/jiterr"
)

// Default author identity used when .jit/config carries no [user]
// section.
const (
	DefaultUserName  = "jit-user"
	DefaultUserEmail = "jit-user@example.com"
)

// Author renders the "name <email>" author string read from
// .jit/config's [user] section, falling back to the defaults above.
func Author(p jitpath.Paths) (string, error) {
	path := p.Config()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultUserName + " <" + DefaultUserEmail + ">", nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return "", jiterr.Wrap(jiterr.IoFailure, err, "repo: load config")
	}
	name := cfg.Section("user").Key("name").MustString(DefaultUserName)
	email := cfg.Section("user").Key("email").MustString(DefaultUserEmail)
	return name + " <" + email + ">", nil
}

// GetConfig reads one key under section from .jit/config, returning an
// empty string if the file or the key is absent.
func GetConfig(p jitpath.Paths, section, key string) (string, error) {
	path := p.Config()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", nil
	}
	cfg, err := ini.Load(path)
	if err != nil {
		return "", jiterr.Wrap(jiterr.IoFailure, err, "repo: load config")
	}
	return cfg.Section(section).Key(key).String(), nil
}

// SetConfig writes one key under section in .jit/config, creating the
// file if absent.
func SetConfig(p jitpath.Paths, section, key, value string) error {
	path := p.Config()
	var cfg *ini.File
	var err error
	if _, statErr := os.Stat(path); statErr == nil {
		cfg, err = ini.Load(path)
	} else {
		cfg = ini.Empty()
	}
	if err != nil {
		return jiterr.Wrap(jiterr.IoFailure, err, "repo: load config")
	}

	cfg.Section(section).Key(key).SetValue(value)
	if err := cfg.SaveTo(path); err != nil {
		return jiterr.Wrap(jiterr.IoFailure, err, "repo: save config")
	}
	return nil
}
