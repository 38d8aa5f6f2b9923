package schema

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// EncodeRecord serializes a persisted record in the given format.
func EncodeRecord(format RecordFormat, rec PersistedRecord) ([]byte, error) {
	switch format {
	case MsgpackFormat:
		return msgpack.Marshal(&rec)
	case JSONFormat, "":
		return json.Marshal(&rec)
	default:
		return nil, fmt.Errorf("unsupported record format: %s", format)
	}
}

// DecodeRecord deserializes a persisted record. If the preferred format fails,
// the other supported format is tried before giving up.
func DecodeRecord(format RecordFormat, data []byte) (PersistedRecord, error) {
	order := []RecordFormat{JSONFormat, MsgpackFormat}
	if format == MsgpackFormat {
		order = []RecordFormat{MsgpackFormat, JSONFormat}
	}

	var firstErr error
	for _, f := range order {
		var rec PersistedRecord
		var err error
		if f == MsgpackFormat {
			err = msgpack.Unmarshal(data, &rec)
		} else {
			err = json.Unmarshal(data, &rec)
		}
		if err == nil {
			return rec, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return PersistedRecord{}, fmt.Errorf("failed to decode popup record: %w", firstErr)
}
