package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

const DefaultProfilesFile = ".reportscfg"

// DataSource is one named connection from the profiles file:
//
//	[production]
//	dsn = postgres://reports@db:5432/shop?sslmode=require
//	max_open_conns = 8
type DataSource struct {
	Profile      string
	DSN          string
	MaxOpenConns int
}

type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetDataSource(ctx context.Context, profile string) (*DataSource, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

// DefaultProfilesPath is $HOME/.reportscfg
func DefaultProfilesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfilesFile
	}
	return filepath.Join(home, DefaultProfilesFile)
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetDataSource(_ context.Context, profile string) (*DataSource, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", profile)
	}

	dsn := section.Key("dsn").String()
	if dsn == "" {
		return nil, fmt.Errorf("profile %s has no dsn", profile)
	}

	return &DataSource{
		Profile:      profile,
		DSN:          dsn,
		MaxOpenConns: section.Key("max_open_conns").MustInt(0),
	}, nil
}
