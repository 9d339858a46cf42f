package config

import (
	"fmt"
	"log"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/regvm/emulator"
	"github.com/ezrec/regvm/vm"
)

// starPredeclared are the names visible to Starlark configurations.
var starPredeclared = starlark.StringDict{
	"DEFAULT_LIMIT": starlark.MakeInt(emulator.DEFAULT_LIMIT),
	"UNBOUNDED":     starlark.MakeInt(-1),
	"TURING":        starlark.String(vm.VOCABULARY_TURING.String()),
	"ASSEMBUNNY":    starlark.String(vm.VOCABULARY_ASSEMBUNNY.String()),
}

func starString(key string, value starlark.Value) (str string, err error) {
	str, ok := starlark.AsString(value)
	if !ok {
		err = &ErrConfigKey{Key: key, Err: ErrConfigType}
	}
	return
}

func starInt(key string, value starlark.Value) (i64 int64, err error) {
	st_int, ok := value.(starlark.Int)
	if ok {
		i64, ok = st_int.Int64()
	}
	if !ok {
		err = &ErrConfigKey{Key: key, Err: ErrConfigType}
	}
	return
}

func starRegisters(key string, value starlark.Value) (regs map[string]int64, err error) {
	dict, ok := value.(*starlark.Dict)
	if !ok {
		err = &ErrConfigKey{Key: key, Err: ErrConfigType}
		return
	}

	regs = make(map[string]int64, dict.Len())
	for _, item := range dict.Items() {
		var name string
		name, err = starString(key, item[0])
		if err != nil {
			return
		}
		regs[name], err = starInt(key+"."+name, item[1])
		if err != nil {
			return
		}
	}

	return
}

func starPart(key string, value starlark.Value) (part Part, err error) {
	dict, ok := value.(*starlark.Dict)
	if !ok {
		err = &ErrConfigKey{Key: key, Err: ErrConfigType}
		return
	}

	for _, item := range dict.Items() {
		var attr string
		attr, err = starString(key, item[0])
		if err != nil {
			return
		}
		switch attr {
		case "name":
			part.Name, err = starString(key+".name", item[1])
		case "answer":
			part.Answer, err = starString(key+".answer", item[1])
		case "registers":
			part.Registers, err = starRegisters(key+".registers", item[1])
		default:
			err = &ErrConfigKey{Key: key + "." + attr, Err: ErrConfigFormat}
		}
		if err != nil {
			return
		}
	}

	return
}

// LoadStarlark executes a Starlark configuration, and collects its
// globals. If src is nil, the file is read from filename.
func LoadStarlark(filename string, src any) (cfg *Config, err error) {
	thread := &starlark.Thread{
		Name: "config",
		Print: func(_ *starlark.Thread, msg string) {
			log.Printf("%v: %v", filename, msg)
		},
	}
	opts := syntax.FileOptions{}

	globals, err := starlark.ExecFileOptions(&opts, thread, filename, src, starPredeclared)
	if err != nil {
		return
	}

	cfg = &Config{}
	defer func() {
		if err != nil {
			cfg = nil
		}
	}()

	if value, ok := globals["vocabulary"]; ok {
		cfg.Vocabulary, err = starString("vocabulary", value)
		if err != nil {
			return
		}
	}

	if value, ok := globals["answer"]; ok {
		cfg.Answer, err = starString("answer", value)
		if err != nil {
			return
		}
	}

	if value, ok := globals["limit"]; ok {
		var limit int64
		limit, err = starInt("limit", value)
		if err != nil {
			return
		}
		cfg.Limit = int(limit)
	}

	if value, ok := globals["registers"]; ok {
		cfg.Registers, err = starRegisters("registers", value)
		if err != nil {
			return
		}
	}

	if value, ok := globals["parts"]; ok {
		list, ok := value.(starlark.Indexable)
		if !ok {
			err = &ErrConfigKey{Key: "parts", Err: ErrConfigType}
			return
		}
		for n := range list.Len() {
			var part Part
			part, err = starPart(fmt.Sprintf("parts[%d]", n), list.Index(n))
			if err != nil {
				return
			}
			cfg.Parts = append(cfg.Parts, part)
		}
	}

	return
}
