// Package config loads run configurations for the register machine.
//
// A configuration selects the vocabulary, the step limit, the answer
// register, and one or more parts, each with its own register preset.
// Configurations are written either in Starlark (.star) or YAML (.yaml,
// .yml):
//
//	vocabulary = "assembunny"
//	limit = DEFAULT_LIMIT
//	answer = "a"
//	parts = [
//	    {"name": "one"},
//	    {"name": "two", "registers": {"c": 1}},
//	]
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/regvm/emulator"
	"github.com/ezrec/regvm/vm"
)

const (
	DEFAULT_ANSWER = "a" // Default answer register.
)

// Part is the configuration of a single run.
type Part struct {
	Name      string           `yaml:"name"`      // Name, defaults to 'partN'.
	Answer    string           `yaml:"answer"`    // Overrides Config.Answer.
	Registers map[string]int64 `yaml:"registers"` // Register presets.
}

// Config is a run configuration.
type Config struct {
	Vocabulary string           `yaml:"vocabulary"` // Vocabulary name.
	Limit      int              `yaml:"limit"`      // Step limit; 0 uses emulator.DEFAULT_LIMIT.
	Answer     string           `yaml:"answer"`     // Answer register name.
	Registers  map[string]int64 `yaml:"registers"`  // Presets shared by every part.
	Parts      []Part           `yaml:"parts"`      // Runs. None means a single run.
}

// Load loads a configuration file, selecting the format by extension.
func Load(path string) (cfg *Config, err error) {
	switch filepath.Ext(path) {
	case ".star":
		cfg, err = LoadStarlark(path, nil)
	case ".yaml", ".yml":
		var inf *os.File
		inf, err = os.Open(path)
		if err != nil {
			return
		}
		defer inf.Close()
		cfg, err = LoadYaml(inf)
	default:
		err = ErrConfigFormat
	}

	if err != nil {
		cfg = nil
		err = fmt.Errorf("%v: %w", path, err)
	}

	return
}

// LoadYaml loads a YAML configuration. Unknown keys are an error.
func LoadYaml(input io.Reader) (cfg *Config, err error) {
	cfg = &Config{}

	decoder := yaml.NewDecoder(input)
	decoder.KnownFields(true)
	err = decoder.Decode(cfg)
	if errors.Is(err, io.EOF) {
		// Empty document.
		err = nil
	}
	if err != nil {
		cfg = nil
		return
	}

	return
}

// resolveRegister resolves a register name of a vocabulary.
func resolveRegister(vocab vm.Vocabulary, name string) (reg vm.Register, err error) {
	reg, ok := vm.RegisterOf(name)
	if !ok || !vocab.Valid(reg) {
		err = vm.ErrParseRegister(name)
		return
	}
	return
}

// resolvePreset applies register presets.
func resolvePreset(vocab vm.Vocabulary, regs *vm.Registers, presets map[string]int64) (err error) {
	for name, value := range presets {
		var reg vm.Register
		reg, err = resolveRegister(vocab, name)
		if err != nil {
			return
		}
		regs.Set(reg, value)
	}
	return
}

// Resolve validates the configuration against its vocabulary, and returns
// the vocabulary, step limit, and parts to run.
func (cfg *Config) Resolve() (vocab vm.Vocabulary, limit int, parts []emulator.Part, err error) {
	vocab, ok := vm.VocabularyOf(cfg.Vocabulary)
	if !ok {
		err = &ErrConfigKey{Key: "vocabulary", Err: vm.ErrVocabularyInvalid}
		return
	}

	limit = cfg.Limit
	if limit == 0 {
		limit = emulator.DEFAULT_LIMIT
	}
	if limit < 0 {
		limit = vm.UNBOUNDED
	}

	answer := cfg.Answer
	if len(answer) == 0 {
		answer = DEFAULT_ANSWER
	}

	var shared vm.Registers
	err = resolvePreset(vocab, &shared, cfg.Registers)
	if err != nil {
		err = &ErrConfigKey{Key: "registers", Err: err}
		return
	}

	cfgParts := cfg.Parts
	if len(cfgParts) == 0 {
		cfgParts = []Part{{}}
	}

	for n, cfgPart := range cfgParts {
		part := emulator.Part{
			Name:   cfgPart.Name,
			Preset: shared,
		}
		if len(part.Name) == 0 {
			part.Name = fmt.Sprintf("part%d", n+1)
		}

		key := fmt.Sprintf("parts[%d]", n)

		err = resolvePreset(vocab, &part.Preset, cfgPart.Registers)
		if err != nil {
			err = &ErrConfigKey{Key: key + ".registers", Err: err}
			return
		}

		partAnswer := cfgPart.Answer
		if len(partAnswer) == 0 {
			partAnswer = answer
		}
		part.Answer, err = resolveRegister(vocab, partAnswer)
		if err != nil {
			err = &ErrConfigKey{Key: key + ".answer", Err: err}
			return
		}

		parts = append(parts, part)
	}

	return
}
