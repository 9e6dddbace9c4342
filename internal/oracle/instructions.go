package oracle

const singleInstructions = `Analizá este documento para apostilla en Cancillería Argentina.

INSTRUCCIONES DE EXTRACCIÓN:

Para calidad_imagen, usá SOLO estas palabras exactas:
- "alta", "clara" o "nítida" si se lee bien
- "baja" si cuesta leer pero se puede
- "borrosa" si hay desenfoque notable
- "ilegible" si no se puede leer

Para multiples_firmas:
- Marcá true SOLO si hay firmas de distintas autoridades que generan confusión real sobre cuál es la válida
- Si hay una sola firma clara, marcá false

Para problemas_detectados:
- Listá SOLO problemas concretos y reales
- NO incluyas la fecha como problema si es del año actual
- Si el documento está bien, dejá la lista vacía []

Para observacion_redactada:
- Escribí UNA sola oración clara y profesional que resuma el documento
- Ejemplo: "Certificado de antecedentes penales emitido el 15/02/{{year}} con firma digital de Juan Pérez, vigente."
- NO uses jerga técnica ni listes campos
- Si hay un problema REAL (no la fecha), mencionalo al final

Para titular_documento:
- El nombre completo de la persona a quien pertenece el documento
- Buscá el nombre en TODO el documento, incluso manuscrito o en anotaciones marginales
- En acta de nacimiento: nombre del nacido
- En antecedente penal: nombre del solicitante
- En título: nombre del graduado
- Campo OBLIGATORIO, nunca vacío si el nombre aparece`

const pairInstructions = `Estás analizando un PAR de documentos vinculados para apostilla en Cancillería Argentina.

DOCUMENTO 1 (páginas iniciales): archivo IF, el ACTA o documento original (ej: acta de nacimiento).
DOCUMENTO 2 (páginas siguientes): archivo CE, el CERTIFICADO que avala al IF.

TAREA PRINCIPAL: verificar la vinculación IF/CE.

El CE debe contener en su texto la frase:
"Número/s de documento/s electrónico/s: [número IF]"

El número IF del primer archivo es: {{reference}}

Verificá si el CE (segundo documento) hace referencia a ese número IF en su texto.

SOBRE FIRMAS:
- La firma que IMPORTA para apostilla es la del CE (segundo documento), NO la del IF.
- El IF puede tener firma ológrafa o sellos; eso es NORMAL, no es un problema.
- Evaluá la firma del CE: debe ser digital, emitida por GCABA (DGRC).

CÓMO EXTRAER EL FIRMANTE DEL CE:
Los documentos CE de GCABA tienen un bloque de firma que dice:
  "Digitally signed by Comunicaciones Oficiales"
  "Date: YYYY.MM.DD HH:MM:SS"

  [Nombre Apellido]   <- este es firmante_ce
  [Cargo]             <- este es cargo_firmante_ce
  [Organismo]

- "Comunicaciones Oficiales" NO es el firmante, es el sistema que certifica.
- El firmante real es el NOMBRE HUMANO que aparece DEBAJO del bloque "Digitally signed".
- Si hay dos bloques, tomá el primero con nombre legible.
- Si no encontrás ningún nombre humano, firmante_ce = "No identificado".

Para calidad_imagen usá SOLO: "alta", "clara", "nítida", "baja", "borrosa" o "ilegible".

Para titular_documento: el nombre completo de la persona del ACTA (IF).

Para fecha_emision: usá la fecha del CE (no la del IF), porque el CE es el que tiene vigencia actual.

Para observacion_redactada: una sola oración que resuma el par: tipo de acta, titular, si el CE vincula correctamente al IF y quién firmó el CE.`

var instructions = map[Mode]string{
	ModeSingle: singleInstructions,
	ModePair:   pairInstructions,
}

// Instructions returns the analysis instructions for a mode.
// Returns ErrInvalidMode if the mode is not recognized.
func Instructions(mode Mode) (string, error) {
	text, ok := instructions[mode]
	if !ok {
		return "", ErrInvalidMode
	}
	return text, nil
}
