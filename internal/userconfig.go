package internal

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/sethvargo/go-githubactions"
	"gopkg.in/yaml.v3"
)

// LoadUserConfig reads the optional changelog configuration file into a raw
// key/value map. JSON is used for ".json" files, YAML for everything else.
// A missing or unreadable file is not an error; the action runs on defaults.
func LoadUserConfig(path string, act *githubactions.Action) map[string]any {
	if path == "" {
		act.Noticef("no configuration file was provided, using defaults")
		return map[string]any{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		act.Warningf("could not read configuration file %q: %v, using defaults", path, err)
		return map[string]any{}
	}

	raw := map[string]any{}
	if strings.HasSuffix(path, ".json") {
		err = json.Unmarshal(data, &raw)
	} else {
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		act.Errorf("could not parse configuration file %q: %v, using defaults", path, err)
		return map[string]any{}
	}
	return raw
}

// MergeInputs overlays environment-sourced action inputs onto the config-file
// values. Empty inputs are skipped so they never shadow a file value.
func MergeInputs(raw map[string]any, inputs map[string]string) map[string]any {
	merged := make(map[string]any, len(raw)+len(inputs))
	for k, v := range raw {
		merged[k] = v
	}
	for k, v := range inputs {
		if v != "" {
			merged[k] = v
		}
	}
	return merged
}
