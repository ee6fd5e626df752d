package metrics

import "github.com/ashishpoonia369/EVs/core/factory"

// Config lists the metrics sinks to build.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
}
