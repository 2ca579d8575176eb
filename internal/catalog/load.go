package catalog

import (
	"os"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/intel-orchestrator/internal/model"
)

// fileSource is the YAML shape for one source override.
type fileSource struct {
	Cost         float64 `yaml:"cost"`
	DurationSecs int     `yaml:"duration_secs"`
	Reliability  float64 `yaml:"reliability"`
	TTLHours     int     `yaml:"ttl_hours"`
	Tier         int     `yaml:"tier"`
}

// fileCatalog is the YAML shape under the top-level "catalog" key.
type fileCatalog struct {
	Sources map[model.SourceType]fileSource `yaml:"sources"`
}

// Load builds a catalog from the defaults overlaid with a YAML file. Fields
// left zero in the file keep their default values, so an override file only
// needs to mention what changes (typically pricing).
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read %s", path)
	}

	var wrapper struct {
		Catalog fileCatalog `yaml:"catalog"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "catalog: parse")
	}

	c := New()
	merged := make(map[model.SourceType]SourceInfo, len(c.sources))
	for id, info := range c.sources {
		merged[id] = info
	}
	for id, fs := range wrapper.Catalog.Sources {
		// Sources new to the file start from the fallback profile, so an
		// override that only names a cost still gets a sane TTL and
		// reliability.
		info, ok := merged[id]
		if !ok {
			info = fallbackInfo()
		}
		if fs.Cost > 0 {
			info.Cost = fs.Cost
		}
		if fs.DurationSecs > 0 {
			info.Duration = time.Duration(fs.DurationSecs) * time.Second
		}
		if fs.Reliability > 0 {
			info.Reliability = fs.Reliability
		}
		if fs.TTLHours > 0 {
			info.TTL = time.Duration(fs.TTLHours) * time.Hour
		}
		if fs.Tier > 0 {
			info.Tier = model.CostTier(fs.Tier)
		}
		merged[id] = info
	}
	c.sources = merged

	return c, nil
}
