package emit

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed schema.cue
var schemaSrc string

var (
	schemaOnce sync.Once
	schemaVal  cue.Value
	schemaErr  error
)

// configSchema compiles the embedded schema once per process.
func configSchema() (cue.Value, error) {
	schemaOnce.Do(func() {
		ctx := cuecontext.New()
		compiled := ctx.CompileString(schemaSrc, cue.Filename("schema.cue"))
		if err := compiled.Err(); err != nil {
			schemaErr = fmt.Errorf("compile config schema: %w", err)
			return
		}
		schemaVal = compiled.LookupPath(cue.ParsePath("#Config"))
		if err := schemaVal.Err(); err != nil {
			schemaErr = fmt.Errorf("lookup #Config: %w", err)
		}
	})
	return schemaVal, schemaErr
}

// CheckSchema verifies that emitted JSON conforms to the runtime
// configuration schema. Emit already guarantees this for well-formed IR;
// the check exists for the CLI's --check flag and for tests guarding the
// emitter against schema drift.
func CheckSchema(data []byte) error {
	schema, err := configSchema()
	if err != nil {
		return err
	}

	expr, err := cuejson.Extract("config.json", data)
	if err != nil {
		return fmt.Errorf("check config: %w", err)
	}

	val := schema.Context().BuildExpr(expr)
	if err := val.Err(); err != nil {
		return fmt.Errorf("check config: %w", err)
	}

	unified := schema.Unify(val)
	if err := unified.Validate(cue.Concrete(true), cue.Final()); err != nil {
		return fmt.Errorf("config does not match runtime schema: %w", err)
	}
	return nil
}
