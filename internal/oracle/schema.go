package oracle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var recordSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"tipo_documento":                 map[string]any{"type": "string"},
		"titular_documento":              map[string]any{"type": "string"},
		"fecha_emision":                  map[string]any{"type": "string"},
		"anio_documento":                 map[string]any{"type": "integer"},
		"es_pre_2012":                    map[string]any{"type": "boolean"},
		"firmantes_visibles":             map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"cantidad_firmas_visibles":       map[string]any{"type": "integer", "minimum": 0},
		"multiples_firmas":               map[string]any{"type": "boolean"},
		"sello_ministerio_visible":       map[string]any{"type": "boolean"},
		"sello_claro":                    map[string]any{"type": "boolean"},
		"calidad_imagen":                 map[string]any{"type": "string", "enum": qualityTiers},
		"es_foto_celular":                map[string]any{"type": "boolean"},
		"problemas_detectados":           map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"observacion_redactada":          map[string]any{"type": "string"},
		"ce_referencia_if_correctamente": map[string]any{"type": "boolean"},
		"numero_if_encontrado_en_ce":     map[string]any{"type": "string"},
		"firmante_ce":                    map[string]any{"type": "string"},
		"cargo_firmante_ce":              map[string]any{"type": "string"},
	},
}

var qualityTiers = []any{"alta", "clara", "nítida", "baja", "borrosa", "ilegible"}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		b, err := json.Marshal(recordSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("analysis.json", bytes.NewReader(b)); err != nil {
			compileErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile("analysis.json")
	})
	return compiled, compileErr
}

// validateSchema checks a sanitized record against the expected shape.
// Failures are reported as warnings by Decode, never as errors.
func validateSchema(data []byte) error {
	s, err := schema()
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("response does not match schema: %w", err)
	}
	return nil
}
