package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Privacy struct {
		DefaultDisallowPhoto    bool   `json:"default_disallow_photo"`
		DefaultDisallowGender   bool   `json:"default_disallow_gender"`
		DefaultDisallowBirthday bool   `json:"default_disallow_birthday"`
		DefaultDisallowAddress  bool   `json:"default_disallow_address"`
		DefaultDisallowCompany  bool   `json:"default_disallow_company"`
		DefaultDisallowTitle    bool   `json:"default_disallow_title"`
		PhoneRegion             string `json:"phone_region"`
		ReprocessConcurrency    int    `json:"reprocess_concurrency"`
	} `json:"privacy,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`

		Collections struct {
			Root string `json:"root"`
		} `json:"collections,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		ReprocessQueueSize int  `json:"reprocess_queue_size"`
		ReprocessOnChange  bool `json:"reprocess_on_change"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			Version:       jsonCfg.App.Version,
		},
		Privacy: Privacy{
			DefaultDisallowPhoto:    jsonCfg.Privacy.DefaultDisallowPhoto,
			DefaultDisallowGender:   jsonCfg.Privacy.DefaultDisallowGender,
			DefaultDisallowBirthday: jsonCfg.Privacy.DefaultDisallowBirthday,
			DefaultDisallowAddress:  jsonCfg.Privacy.DefaultDisallowAddress,
			DefaultDisallowCompany:  jsonCfg.Privacy.DefaultDisallowCompany,
			DefaultDisallowTitle:    jsonCfg.Privacy.DefaultDisallowTitle,
			PhoneRegion:             jsonCfg.Privacy.PhoneRegion,
			ReprocessConcurrency:    jsonCfg.Privacy.ReprocessConcurrency,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
			Collections: Collections{
				Root: jsonCfg.Storage.Collections.Root,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Workers: Workers{
			ReprocessQueueSize: jsonCfg.Workers.ReprocessQueueSize,
			ReprocessOnChange:  jsonCfg.Workers.ReprocessOnChange,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
