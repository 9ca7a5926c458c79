package console

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/session_v1.json
var schemaV1Source string

//go:embed schema/session_v2.json
var schemaV2Source string

var compiledSchemas = func() map[string]*jsonschema.Schema {
	out := make(map[string]*jsonschema.Schema, 2)
	// The v2 schema references shared definitions from v1, so both
	// resources are registered with every compiler.
	for version, name := range map[string]string{
		SchemaV1: "session_v1.json",
		SchemaV2: "session_v2.json",
	} {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("session_v1.json", strings.NewReader(schemaV1Source)); err != nil {
			panic(fmt.Sprintf("console: add schema session_v1.json: %v", err))
		}
		if err := compiler.AddResource("session_v2.json", strings.NewReader(schemaV2Source)); err != nil {
			panic(fmt.Sprintf("console: add schema session_v2.json: %v", err))
		}
		schema, err := compiler.Compile(name)
		if err != nil {
			panic(fmt.Sprintf("console: compile schema %s: %v", name, err))
		}
		out[version] = schema
	}
	return out
}()

// Decode parses a session document in either schema version. Missing
// optional sub-objects are defaulted; structural violations of the schema
// are reported as errors. The version tag is taken from the document and
// defaults to 1.0 when absent.
func Decode(data []byte) (*ConsoleSession, error) {
	var probe struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse session document: %w", err)
	}

	version := strings.TrimSpace(probe.Version)
	if version == "" {
		version = SchemaV1
	}
	schema, ok := compiledSchemas[version]
	if !ok {
		return nil, fmt.Errorf("unsupported session schema version %q", probe.Version)
	}

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("parse session document: %w", err)
	}
	if err := schema.Validate(generic); err != nil {
		return nil, fmt.Errorf("session document does not match schema %s: %w", version, err)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	session := &ConsoleSession{}
	if err := decoder.Decode(session); err != nil {
		return nil, fmt.Errorf("decode session document: %w", err)
	}
	session.Version = version
	session.Normalize()
	return session, nil
}

// Load reads and decodes a session document from disk.
func Load(path string) (*ConsoleSession, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	return Decode(data)
}

// Encode serializes a session back to its document form.
func Encode(session *ConsoleSession) ([]byte, error) {
	if session == nil {
		return nil, fmt.Errorf("nil session")
	}
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return append(data, '\n'), nil
}
