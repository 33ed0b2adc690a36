package balance

// Source is the capability set of a balance provider: decoding its raw
// payloads into provider-native records, and projecting one of those into a
// canonical Record.
type Source[N any] interface {
	Provider() Provider
	// Decode turns a response body into provider-native records.
	Decode(data []byte) ([]N, error)
	// Project maps a native record to a Record. It reports false when the
	// native record does not describe a balance.
	Project(n N) (Record, bool)
}

// Normalize decodes data with src, projects every native record and removes
// duplicated accounts.
func Normalize[N any](src Source[N], data []byte) ([]Record, error) {
	natives, err := src.Decode(data)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(natives))
	for _, n := range natives {
		r, ok := src.Project(n)
		if !ok {
			continue
		}
		r.Provider = src.Provider()
		records = append(records, r)
	}
	return Dedupe(records), nil
}
