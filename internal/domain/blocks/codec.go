package blocks

import (
	"encoding/json"
	"fmt"
)

// Encode converts a typed content shape into the opaque map representation
// sections carry. Shapes are plain structs with json tags, so a marshal
// round-trip is lossless.
func Encode(shape any) map[string]any {
	raw, err := json.Marshal(shape)
	if err != nil {
		// Shapes contain only marshalable types; this indicates a programming error.
		panic(fmt.Sprintf("blocks: encode %T: %v", shape, err))
	}
	var content map[string]any
	if err := json.Unmarshal(raw, &content); err != nil {
		panic(fmt.Sprintf("blocks: encode %T: %v", shape, err))
	}
	return content
}

// Decode populates a typed content shape from the opaque map representation.
// Unknown keys are ignored; missing keys leave zero values.
func Decode(content map[string]any, shape any) error {
	raw, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to encode content payload: %w", err)
	}
	if err := json.Unmarshal(raw, shape); err != nil {
		return fmt.Errorf("failed to decode content payload into %T: %w", shape, err)
	}
	return nil
}
