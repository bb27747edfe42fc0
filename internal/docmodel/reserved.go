package docmodel

// Reserved holds the front-matter keys with a defined meaning for sections. Every
// other key ends up in Params.
type Reserved struct {
	Type   string
	Preset string
	Input  any
	Props  map[string]any
	Fetch  any
	Data   any
	ID     string
	Params map[string]any
}

var reservedKeys = map[string]struct{}{
	"type": {}, "component": {}, "preset": {}, "input": {},
	"props": {}, "fetch": {}, "data": {}, "id": {},
}

// IsReserved reports whether key is a reserved front-matter key.
func IsReserved(key string) bool {
	_, ok := reservedKeys[key]
	return ok
}

// SplitReserved separates reserved keys from free-form params. "component" is an
// alias of "type"; "type" wins when both are set. Params is never nil.
func SplitReserved(fields map[string]any) Reserved {
	r := Reserved{Params: make(map[string]any, len(fields))}
	for k, v := range fields {
		if !IsReserved(k) {
			r.Params[k] = v
		}
	}

	r.Type = stringOf(fields["type"])
	if r.Type == "" {
		r.Type = stringOf(fields["component"])
	}
	r.Preset = stringOf(fields["preset"])
	r.ID = stringOf(fields["id"])
	r.Input = fields["input"]
	r.Fetch = fields["fetch"]
	r.Data = fields["data"]
	if props, ok := fields["props"].(map[string]any); ok {
		r.Props = props
	}
	return r
}

func stringOf(v any) string {
	s, _ := v.(string)
	return s
}
