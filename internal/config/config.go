package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config describes all runtime settings for the client.
//
// Values come from flags/env in cmd (cobra+viper); the struct is loaded once
// in main, validated, then passed down via DI (no global variables).
type Config struct {
	ServerURL string // http(s) base of the REST API and the game hub
	HubPath   string // path of the realtime endpoint, usually /gamehub
	TokenFile string

	DialTimeout  time.Duration
	PingInterval time.Duration
	MaxRedials   uint64 // dial attempts per connect cycle, 0 => keep trying

	Log struct {
		Format string // text|json
	}
}

func (c Config) Validate() error {
	if c.ServerURL == "" {
		return errors.New("server URL is empty")
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid server URL %q (want http(s)://host)", c.ServerURL)
	}
	if !strings.HasPrefix(c.HubPath, "/") {
		return fmt.Errorf("hub path %q must start with /", c.HubPath)
	}
	if c.TokenFile == "" {
		return errors.New("token file path is empty")
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("unsupported log format %q (want text|json)", c.Log.Format)
	}
	return nil
}

// HubURL derives the websocket endpoint from the server base URL.
func (c Config) HubURL() string {
	u := c.ServerURL
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}
	return strings.TrimSuffix(u, "/") + c.HubPath
}
