package metrics

import (
	"fmt"
	"time"

	"github.com/ashishpoonia369/EVs/core/factory"
	coremetrics "github.com/ashishpoonia369/EVs/core/metrics"
)

// init registers the built-in sinks.
func init() {
	_ = coremetrics.RegisterSink("nop", func(map[string]any) (coremetrics.Sink, error) {
		return coremetrics.NopSink{}, nil
	})

	_ = coremetrics.RegisterSink("prometheus", func(conf map[string]any) (coremetrics.Sink, error) {
		var c struct {
			Textfile string `json:"textfile"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewPromSink(c.Textfile)
	})

	_ = coremetrics.RegisterSink("influx", func(conf map[string]any) (coremetrics.Sink, error) {
		var c struct {
			URL    string `json:"url"`
			Token  string `json:"token"`
			Org    string `json:"org"`
			Bucket string `json:"bucket"`
			Epoch  string `json:"epoch"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.URL == "" {
			return nil, fmt.Errorf("influx sink requires url")
		}
		epoch := time.Now()
		if c.Epoch != "" {
			t, err := time.Parse(time.RFC3339, c.Epoch)
			if err != nil {
				return nil, fmt.Errorf("influx epoch: %w", err)
			}
			epoch = t
		}
		return NewInfluxSinkWithFallback(c.URL, c.Token, c.Org, c.Bucket, epoch), nil
	})
}
