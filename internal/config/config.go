// Package config loads daemon settings from an rc file, the environment and
// built-in defaults, in that order of increasing precedence.
package config

import (
	"bufio"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Lulu110106/projet-Rpaint/internal/net"
)

// Config carries everything the daemon needs to come up.
type Config struct {
	Name       string
	Group      string
	SnapPort   int
	BrushColor color.NRGBA
	BrushWidth float32
}

// Default returns the built-in configuration.
func Default() Config {
	name := "anonymous"
	if h, err := os.Hostname(); err == nil && h != "" {
		name = h
	}
	return Config{
		Name:       name,
		Group:      net.DefaultGroup,
		SnapPort:   45455,
		BrushColor: color.NRGBA{R: 0, G: 150, B: 255, A: 255},
		BrushWidth: 4,
	}
}

// DefaultPath is where the rc file lives unless overridden.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rpaintrc"
	}
	return filepath.Join(home, ".rpaintrc")
}

// Load layers the rc file at path, then the RPAINT_* environment, over the
// defaults. A missing file is fine; malformed values keep their defaults
// with a log line, never an error.
func Load(path string) Config {
	cfg := Default()
	cfg.loadFile(path)
	cfg.loadEnv()
	return cfg
}

func (c *Config) loadFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[config] %s: %v", path, err)
		}
		return
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			log.Printf("[config] skipping %q, not a key=value line", line)
			continue
		}
		c.set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	if err := sc.Err(); err != nil {
		log.Printf("[config] reading %s: %v", path, err)
	}
}

func (c *Config) set(key, value string) {
	switch key {
	case "name":
		if value != "" {
			c.Name = value
		}
	case "group":
		if value != "" {
			c.Group = value
		}
	case "snapshot_port":
		p, err := strconv.Atoi(value)
		if err != nil || p < 0 || p > 65535 {
			log.Printf("[config] bad snapshot_port %q, keeping %d", value, c.SnapPort)
			return
		}
		c.SnapPort = p
	case "brush_color":
		col, err := ParseHexColor(value)
		if err != nil {
			log.Printf("[config] bad brush_color %q: %v", value, err)
			return
		}
		c.BrushColor = col
	case "brush_width":
		w, err := strconv.ParseFloat(value, 32)
		if err != nil || w <= 0 {
			log.Printf("[config] bad brush_width %q, keeping %g", value, c.BrushWidth)
			return
		}
		c.BrushWidth = float32(w)
	default:
		// Unknown keys are tolerated so old rc files keep working.
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv("RPAINT_NAME"); v != "" {
		c.Name = v
	}
	if v := os.Getenv("RPAINT_GROUP"); v != "" {
		c.Group = v
	}
	if v := os.Getenv("RPAINT_SNAP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p >= 0 && p <= 65535 {
			c.SnapPort = p
		} else {
			log.Printf("[config] bad RPAINT_SNAP_PORT %q, keeping %d", v, c.SnapPort)
		}
	}
}

// ParseHexColor reads an opaque RRGGBB color, with or without a leading #.
func ParseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("want RRGGBB, got %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("want RRGGBB, got %q", s)
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}

// ExpandHome rewrites a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}
