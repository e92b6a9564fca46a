// internal/transport/webhook/schema.go
package webhook

import "search-bot/internal/common/validation"

// updateSchema covers the fields of a Telegram update the bot reads.
// Unknown fields are allowed since Telegram adds them over time.
const updateSchema = `{
  "type": "object",
  "required": ["update_id"],
  "properties": {
    "update_id": {"type": "integer", "minimum": 0},
    "message": {
      "type": "object",
      "required": ["message_id", "chat"],
      "properties": {
        "message_id": {"type": "integer"},
        "chat": {
          "type": "object",
          "required": ["id"],
          "properties": {
            "id":   {"type": "integer"},
            "type": {"type": "string"}
          }
        },
        "from": {
          "type": "object",
          "properties": {
            "id":     {"type": "integer"},
            "is_bot": {"type": "boolean"}
          }
        },
        "text": {"type": "string"}
      }
    }
  }
}`

var compiledUpdateSchema = validation.MustCompile(updateSchema)
