// Package factory is a small generic registry used to build modules from
// configuration. A module is described by a type string and a map of raw
// settings which the factory decodes into its own typed struct.
//
//	reg := factory.NewRegistry[metrics.Sink]()
//	_ = reg.Register("textfile", func(conf map[string]any) (metrics.Sink, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return newTextfileSink(c.Path)
//	})
//	sink, err := reg.Create(factory.ModuleConfig{Type: "textfile", Conf: map[string]any{"path": "evs.prom"}})
package factory
