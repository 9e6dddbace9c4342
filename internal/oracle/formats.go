package oracle

const singleFormat = `Respondé SOLO JSON válido con estos campos:
{
  "tipo_documento": string,
  "titular_documento": string,
  "fecha_emision": string (tal como aparece),
  "anio_documento": number,
  "es_pre_2012": boolean,
  "firmantes_visibles": [strings],
  "cantidad_firmas_visibles": number,
  "multiples_firmas": boolean,
  "sello_ministerio_visible": boolean,
  "sello_claro": boolean,
  "calidad_imagen": "alta"|"clara"|"nítida"|"baja"|"borrosa"|"ilegible",
  "es_foto_celular": boolean,
  "problemas_detectados": [strings, vacía si todo OK],
  "observacion_redactada": string
}`

const pairFormat = `Respondé SOLO JSON válido con estos campos:
{
  "tipo_documento": string,
  "titular_documento": string,
  "fecha_emision": string,
  "anio_documento": number,
  "es_pre_2012": boolean,
  "firmantes_visibles": [strings],
  "cantidad_firmas_visibles": number,
  "multiples_firmas": boolean,
  "sello_ministerio_visible": boolean,
  "sello_claro": boolean,
  "calidad_imagen": "alta"|"clara"|"nítida"|"baja"|"borrosa"|"ilegible",
  "es_foto_celular": boolean,
  "ce_referencia_if_correctamente": boolean,
  "numero_if_encontrado_en_ce": string,
  "firmante_ce": string,
  "cargo_firmante_ce": string,
  "problemas_detectados": [],
  "observacion_redactada": string
}`

var formats = map[Mode]string{
	ModeSingle: singleFormat,
	ModePair:   pairFormat,
}

// OutputFormat returns the JSON response format the oracle must follow for a mode.
// Returns ErrInvalidMode if the mode is not recognized.
func OutputFormat(mode Mode) (string, error) {
	text, ok := formats[mode]
	if !ok {
		return "", ErrInvalidMode
	}
	return text, nil
}
