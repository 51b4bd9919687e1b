package storage

import (
	"encoding/json"
	"errors"

	"hereditas/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodePedigree(record model.PedigreeRecord) ([]byte, error) {
	return json.Marshal(record)
}

func DecodePedigree(data []byte) (model.PedigreeRecord, error) {
	var record model.PedigreeRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.PedigreeRecord{}, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return model.PedigreeRecord{}, err
	}
	return record, nil
}

func EncodeRun(record model.RunRecord) ([]byte, error) {
	return json.Marshal(record)
}

func DecodeRun(data []byte) (model.RunRecord, error) {
	var record model.RunRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.RunRecord{}, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return model.RunRecord{}, err
	}
	return record, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
