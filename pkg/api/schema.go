package api

import (
	"github.com/invopop/jsonschema"
)

// SchemaDoc - одна схема протокола и имя файла для нее
type SchemaDoc struct {
	File   string
	Schema *jsonschema.Schema
}

// Schemas отражает типы протокола в JSON Schema для веб-клиента
func Schemas() []SchemaDoc {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}

	docs := []struct {
		file  string
		title string
		v     interface{}
	}{
		{"client_command.schema.json", "Client command", new(ClientCommand)},
		{"server_response.schema.json", "Server response", new(ServerResponse)},
		{"direction_payload.schema.json", "MOVE payload", new(DirectionPayload)},
		{"answer_payload.schema.json", "ANSWER payload", new(AnswerPayload)},
		{"text_payload.schema.json", "TEXT payload", new(TextPayload)},
		{"resolve_payload.schema.json", "RESOLVE payload", new(ResolvePayload)},
		{"position_payload.schema.json", "TELEPORT payload", new(PositionPayload)},
		{"spawn_wisp_payload.schema.json", "SPAWN_WISP payload", new(SpawnWispPayload)},
	}

	out := make([]SchemaDoc, 0, len(docs))
	for _, d := range docs {
		s := reflector.Reflect(d.v)
		s.Title = d.title
		out = append(out, SchemaDoc{File: d.file, Schema: s})
	}
	return out
}
