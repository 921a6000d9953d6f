// Package content loads the static material the portfolio renders: the
// roadmap nodes and the profile copy.
package content

import (
	"context"
	_ "embed"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"

	"github.com/vacmar/portfolio/internal/roadmap"
)

//go:embed roadmap.yaml
var defaultRoadmap []byte

// strict strips every tag; loaded strings are plain text and the templates
// escape them on output.
var strict = bluemonday.StrictPolicy()

// DefaultRoadmap returns the store built from the embedded roadmap.
func DefaultRoadmap() (*roadmap.Store, error) {
	nodes, err := ParseRoadmapYAML(defaultRoadmap)
	if err != nil {
		return nil, fmt.Errorf("content: embedded roadmap: %w", err)
	}
	return roadmap.NewStore(nodes)
}

// LoadRoadmap builds the roadmap store from source: empty for the embedded
// roadmap, a .yaml/.yml file, or a SQLite database (.db, .sqlite, .sqlite3).
func LoadRoadmap(ctx context.Context, source string) (*roadmap.Store, error) {
	if source == "" {
		return DefaultRoadmap()
	}

	var (
		nodes []roadmap.Node
		err   error
	)
	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml":
		var data []byte
		data, err = os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("content: read %s: %w", source, err)
		}
		nodes, err = ParseRoadmapYAML(data)
	case ".db", ".sqlite", ".sqlite3":
		nodes, err = LoadSQLite(ctx, source)
	default:
		return nil, fmt.Errorf("content: unsupported roadmap source %q", source)
	}
	if err != nil {
		return nil, err
	}

	store, err := roadmap.NewStore(nodes)
	if err != nil {
		return nil, fmt.Errorf("content: %s: %w", source, err)
	}
	return store, nil
}

// ParseRoadmapYAML decodes a YAML list of nodes and sanitises their text.
func ParseRoadmapYAML(data []byte) ([]roadmap.Node, error) {
	var nodes []roadmap.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("content: decode roadmap yaml: %w", err)
	}
	for i := range nodes {
		sanitizeNode(&nodes[i])
	}
	return nodes, nil
}

// MarshalRoadmapYAML encodes nodes in the format ParseRoadmapYAML reads.
func MarshalRoadmapYAML(nodes []roadmap.Node) ([]byte, error) {
	data, err := yaml.Marshal(nodes)
	if err != nil {
		return nil, fmt.Errorf("content: encode roadmap yaml: %w", err)
	}
	return data, nil
}

func sanitizeNode(n *roadmap.Node) {
	n.Title = plain(n.Title)
	n.Description = plain(n.Description)
	n.Category = plain(n.Category)
	n.Duration = plain(n.Duration)
	n.Date = plain(n.Date)
	n.GitHub = safeURL(n.GitHub)
	n.Demo = safeURL(n.Demo)
	for _, list := range [][]string{n.Skills, n.Features, n.TechStack} {
		for i := range list {
			list[i] = plain(list[i])
		}
	}
}

// plain removes markup and returns unescaped text.
func plain(s string) string {
	return html.UnescapeString(strings.TrimSpace(strict.Sanitize(s)))
}

// safeURL keeps only http(s) links; anything else is dropped.
func safeURL(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://") {
		return s
	}
	return ""
}
