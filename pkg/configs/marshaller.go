package configs

import (
	"os"

	"gopkg.in/yaml.v3"
)

// load tournament registry config from a file.
//
// args:
//   - filepath: filepath refers a config file.
//
// returns *TournConfig, error:
//
//	When loading success, returns `(*TournConfig, nil)`.
//	Otherwise, returns `(nil, error)`.
func LoadTournConfig(filepath string) (*TournConfig, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return Unmarshal(content)
}

func Unmarshal(conf []byte) (out *TournConfig, err error) {
	var _out *TournConfigMarshall
	err = yaml.Unmarshal(conf, &_out)
	if err != nil {
		return nil, err
	}
	out = TrySeal[*TournConfig](_out)
	return out, nil
}

// load audit sink daemon config from a file.
func LoadAuditdConfig(filepath string) (*AuditdConfig, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	var _out *AuditdConfigMarshall
	if err := yaml.Unmarshal(content, &_out); err != nil {
		return nil, err
	}
	return TrySeal[*AuditdConfig](_out), nil
}
