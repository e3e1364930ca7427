package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Natatashkin/todo/internal/service"
)

// taskSchema describes one task as served by /todos. IDs may be numbers
// (JSONPlaceholder, json-server) or strings (mockapi.io).
const taskSchema = `{
  "type": "object",
  "required": ["id", "title", "completed"],
  "properties": {
    "id":        {"type": ["integer", "string"], "minLength": 1},
    "userId":    {"type": ["integer", "string", "null"]},
    "title":     {"type": "string"},
    "completed": {"type": "boolean"}
  }
}`

var (
	taskValidator = jsonschema.MustCompileString("task.json", taskSchema)
	listValidator = jsonschema.MustCompileString("tasks.json",
		`{"type": "array", "items": `+taskSchema+`}`)
)

// flexID is an identifier that may travel as a JSON number or string.
type flexID string

func (id *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a number or string: %s", data)
	}
	*id = flexID(n.String())
	return nil
}

// MarshalJSON writes numeric ids as numbers so integer-keyed APIs accept them.
func (id flexID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

type wireTask struct {
	ID        flexID `json:"id,omitempty"`
	UserID    flexID `json:"userId,omitempty"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

func (w wireTask) toTask() service.Task {
	return service.Task{
		ID:        string(w.ID),
		Title:     w.Title,
		Completed: w.Completed,
		OwnerID:   string(w.UserID),
	}
}

func fromTask(t service.Task) wireTask {
	return wireTask{
		ID:        flexID(t.ID),
		UserID:    flexID(t.OwnerID),
		Title:     t.Title,
		Completed: t.Completed,
	}
}

func fromNewTask(t service.NewTask) wireTask {
	return wireTask{
		UserID:    flexID(t.OwnerID),
		Title:     t.Title,
		Completed: t.Completed,
	}
}

// decodeTask validates body against the task schema and decodes it.
func decodeTask(body []byte) (service.Task, error) {
	if err := validate(taskValidator, body); err != nil {
		return service.Task{}, err
	}
	var w wireTask
	if err := json.Unmarshal(body, &w); err != nil {
		return service.Task{}, fmt.Errorf("decode task: %w", err)
	}
	return w.toTask(), nil
}

// decodeTasks validates body against the list schema and decodes it.
func decodeTasks(body []byte) ([]service.Task, error) {
	if err := validate(listValidator, body); err != nil {
		return nil, err
	}
	var ws []wireTask
	if err := json.Unmarshal(body, &ws); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	tasks := make([]service.Task, 0, len(ws))
	for _, w := range ws {
		tasks = append(tasks, w.toTask())
	}
	return tasks, nil
}

func validate(schema *jsonschema.Schema, body []byte) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("malformed response: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("malformed response: %w", err)
	}
	return nil
}
