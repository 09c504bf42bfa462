package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/ledgerwatch/log/v3"
	"github.com/mit-pdos/deltaproof/verifier"
	"github.com/pelletier/go-toml"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v2"
)

type clientConfig struct {
	addr        string
	metricsAddr string
	maxFrame    datasize.ByteSize
	lvl         log.Lvl
	verify      verifier.Config
}

func parseConfig(cliCtx *cli.Context) (*clientConfig, error) {
	if path := cliCtx.String(configFlag.Name); path != "" {
		if err := setFlagsFromConfigFile(cliCtx, path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	cfg := &clientConfig{
		addr:        cliCtx.String(addrFlag.Name),
		metricsAddr: cliCtx.String(metricsAddrFlag.Name),
		verify: verifier.Config{
			Parallelism:    cliCtx.Int(parallelismFlag.Name),
			CheckStateHash: cliCtx.Bool(checkStateHashFlag.Name),
		},
	}
	if err := cfg.maxFrame.UnmarshalText([]byte(cliCtx.String(maxFrameFlag.Name))); err != nil {
		return nil, fmt.Errorf("--%s: %w", maxFrameFlag.Name, err)
	}
	lvl, err := log.LvlFromString(cliCtx.String(verbosityFlag.Name))
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", verbosityFlag.Name, err)
	}
	cfg.lvl = lvl
	return cfg, nil
}

// setFlagsFromConfigFile sets every flag the command line left unset.
func setFlagsFromConfigFile(ctx *cli.Context, filePath string) error {
	fileExtension := filepath.Ext(filePath)

	fileConfig := make(map[string]interface{})

	if fileExtension == ".yaml" || fileExtension == ".yml" {
		yamlFile, err := os.ReadFile(filePath)
		if err != nil {
			return err
		}
		err = yaml.Unmarshal(yamlFile, fileConfig)
		if err != nil {
			return err
		}
	} else if fileExtension == ".toml" {
		tomlFile, err := os.ReadFile(filePath)
		if err != nil {
			return err
		}
		err = toml.Unmarshal(tomlFile, &fileConfig)
		if err != nil {
			return err
		}
	} else {
		return errors.New("config files only accepted are .yaml and .toml")
	}

	for key, value := range fileConfig {
		if ctx.IsSet(key) {
			continue
		}
		if reflect.ValueOf(value).Kind() == reflect.Slice {
			sliceInterface := value.([]interface{})
			s := make([]string, len(sliceInterface))
			for i, v := range sliceInterface {
				s[i] = fmt.Sprintf("%v", v)
			}
			if err := ctx.Set(key, strings.Join(s, ",")); err != nil {
				return fmt.Errorf("failed setting %s flag with values=%s error=%s", key, s, err)
			}
		} else {
			if err := ctx.Set(key, fmt.Sprintf("%v", value)); err != nil {
				return fmt.Errorf("failed setting %s flag with value=%v error=%s", key, value, err)
			}
		}
	}
	return nil
}
