package config

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"
)

// Property is one GA4 property entry from the registry file. ProfilePath
// points at the full analysis profile used by the collectors.
type Property struct {
	Name        string
	PropertyID  string
	ProfilePath string
}

type Registry interface {
	GetProperties(ctx context.Context) ([]string, error)
	GetProperty(ctx context.Context, name string) (*Property, error)
}

type propertyRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &propertyRegistry{cfg: cfg}, nil
}

func (pr *propertyRegistry) GetProperties(_ context.Context) ([]string, error) {
	var properties []string
	for _, section := range pr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			properties = append(properties, section.Name())
		}
	}
	return properties, nil
}

func (pr *propertyRegistry) GetProperty(_ context.Context, name string) (*Property, error) {
	if !pr.cfg.HasSection(name) {
		return nil, fmt.Errorf("property %s not found", name)
	}
	section := pr.cfg.Section(name)

	property := &Property{
		Name:        name,
		PropertyID:  section.Key("property_id").String(),
		ProfilePath: section.Key("profile").String(),
	}
	if property.PropertyID == "" {
		return nil, fmt.Errorf("property %s has no property_id", name)
	}
	if property.ProfilePath == "" {
		return nil, fmt.Errorf("property %s has no profile path", name)
	}
	return property, nil
}
