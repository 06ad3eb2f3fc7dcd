package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-go-golems/gorgia-chat/pkg/carousel"
	"github.com/go-go-golems/gorgia-chat/pkg/chat"
	"github.com/go-go-golems/gorgia-chat/pkg/logging"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	AppName   = "gorgia-chat"
	EnvPrefix = "GORGIA_CHAT"
)

const DefaultGreeting = "მოგესალმებით! მე ვარ Gorgia-ს დახმარების ასისტენტი. რით შემიძლია დაგეხმაროთ?"

type Settings struct {
	Endpoint         string
	Timeout          time.Duration
	Greeting         string
	PlaceholderImage string
	Markdown         bool
	ProbeImages      bool
	Plain            bool
	Logging          logging.Settings
}

// AddFlags registers the persistent flags shared by every command.
func AddFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.String("endpoint", chat.DefaultEndpoint, "chat endpoint URL")
	f.Duration("timeout", 0, "request timeout (0 disables it)")
	f.String("greeting", DefaultGreeting, "system message shown when the conversation opens")
	f.String("placeholder-image", carousel.DefaultPlaceholderImage, "image shown when a product image fails to load")
	f.Bool("markdown", true, "render bot messages as markdown")
	f.Bool("probe-images", true, "check product image URLs and fall back to the placeholder")
	f.Bool("plain", false, "use line mode instead of the full-screen UI")
	f.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	f.String("log-format", "console", "log format (console, json)")
	f.String("log-file", "", "write logs to this file (rotated)")
	f.Bool("with-caller", false, "include caller information in logs")
	f.String("config", "", "config file (default $HOME/."+AppName+"/config.yaml)")
}

// InitViper loads .env, binds cmd's flags and reads the optional config file.
func InitViper(cmd *cobra.Command) (*viper.Viper, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, errors.Wrap(err, "bind flags")
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, "."+AppName))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || v.GetString("config") != "" {
			return nil, errors.Wrap(err, "read config")
		}
	}
	return v, nil
}

func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		Endpoint:         v.GetString("endpoint"),
		Timeout:          v.GetDuration("timeout"),
		Greeting:         v.GetString("greeting"),
		PlaceholderImage: v.GetString("placeholder-image"),
		Markdown:         v.GetBool("markdown"),
		ProbeImages:      v.GetBool("probe-images"),
		Plain:            v.GetBool("plain"),
		Logging: logging.Settings{
			Level:      v.GetString("log-level"),
			Format:     v.GetString("log-format"),
			File:       v.GetString("log-file"),
			WithCaller: v.GetBool("with-caller"),
		},
	}
	if s.Endpoint == "" {
		s.Endpoint = chat.DefaultEndpoint
	}
	if !strings.HasPrefix(s.Endpoint, "http://") && !strings.HasPrefix(s.Endpoint, "https://") {
		return Settings{}, errors.Errorf("endpoint %q must be an http(s) URL", s.Endpoint)
	}
	if s.Timeout < 0 {
		return Settings{}, errors.Errorf("negative timeout %s", s.Timeout)
	}
	return s, nil
}
